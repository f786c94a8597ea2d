//go:build !windows

package favcurator

import "testing"

func TestPleasantPath(t *testing.T) {
	type args struct {
		absolute     string
		root         string
		wd           string
		collapseRoot bool
		omitDotSlash bool
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{name: "NextToFileInRoot", args: args{absolute: "/games/rpg/notes.md", root: "/games/rpg", wd: "/games/rpg", collapseRoot: true, omitDotSlash: false}, want: "./notes.md"},
		{name: "NextToFileInRootWithoutDotSlash", args: args{absolute: "/games/rpg/notes.md", root: "/games/rpg", wd: "/games/rpg", collapseRoot: true, omitDotSlash: true}, want: "notes.md"},
		{name: "FolderFromRoot", args: args{absolute: "/games/rpg/levels/intro", root: "/games/rpg", wd: "/games/rpg", collapseRoot: false, omitDotSlash: false}, want: "./levels/intro"},
		{name: "RootFromRoot", args: args{absolute: "/games/rpg", root: "/games/rpg", wd: "/games/rpg", collapseRoot: true, omitDotSlash: false}, want: "."},
		{name: "FileInRootFromSub", args: args{absolute: "/games/rpg/notes.md", root: "/games/rpg", wd: "/games/rpg/levels", collapseRoot: true, omitDotSlash: false}, want: "../notes.md"},
		{name: "FileInRootFromDeep", args: args{absolute: "/games/rpg/notes.md", root: "/games/rpg", wd: "/games/rpg/levels/intro", collapseRoot: true, omitDotSlash: false}, want: "../../notes.md"},
		{name: "RootFromSub", args: args{absolute: "/games/rpg", root: "/games/rpg", wd: "/games/rpg/levels", collapseRoot: true, omitDotSlash: false}, want: ".."},
		{name: "OutsideProjectCollapsed", args: args{absolute: "/games/rpg/levels/boss.tscn", root: "/games/rpg", wd: "/", collapseRoot: true, omitDotSlash: false}, want: "project://levels/boss.tscn"},
		{name: "OutsideProjectExpanded", args: args{absolute: "/games/rpg/levels/boss.tscn", root: "/games/rpg", wd: "/", collapseRoot: false, omitDotSlash: false}, want: "/games/rpg/levels/boss.tscn"},
		{name: "BarelyOutsideProject", args: args{absolute: "/games/rpg/levels/boss.tscn", root: "/games/rpg", wd: "/games", collapseRoot: true, omitDotSlash: true}, want: "project://levels/boss.tscn"},
		{name: "SiblingDirectory", args: args{absolute: "/games/rpg/levels/boss.tscn", root: "/games/rpg", wd: "/games/rpg2", collapseRoot: true, omitDotSlash: false}, want: "project://levels/boss.tscn"},
		{name: "TargetOutsideProject", args: args{absolute: "/etc/hosts", root: "/games/rpg", wd: "/", collapseRoot: true, omitDotSlash: false}, want: "/etc/hosts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pleasantPath(tt.args.absolute, tt.args.root, tt.args.wd, tt.args.collapseRoot, tt.args.omitDotSlash); got != tt.want {
				t.Errorf("pleasantPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsChildOf(t *testing.T) {
	if !isChildOf("/games/rpg/levels", "/games/rpg") {
		t.Error("subdirectory not recognized as child")
	}
	if isChildOf("/games/rpg", "/games/rpg") {
		t.Error("directory must not be its own child")
	}
	if isChildOf("/games/rpg2", "/games/rpg") {
		t.Error("sibling with common prefix recognized as child")
	}
}
