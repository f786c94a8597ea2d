package favcurator

import (
	"os"
	"path/filepath"
	"strings"

	out "github.com/n2code/favcurator/internal/output"
)

const projectRootScheme = "project:" + string(filepath.Separator) + string(filepath.Separator)

func (f *favcurator) displayablePath(absolutePath string, shortenProjectRoot bool, omitDotSlash bool) string {
	pleasant := pleasantPath(filepath.Clean(absolutePath), f.root, mustGetwd(), shortenProjectRoot, omitDotSlash)
	if f.printer.UsesEscapes() && strings.HasPrefix(pleasant, projectRootScheme) {
		pleasant = strings.Replace(pleasant, projectRootScheme, out.TerminalFormatAsDim(projectRootScheme), 1)
	}
	return pleasant
}

const dot string = "."
const dirSeparator = string(filepath.Separator)
const dotDirSeparator = dot + dirSeparator
const doubleDot = dot + dot
const doubleDotDirSeparator = doubleDot + dirSeparator

func isChildOf(child string, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return !(rel == dot || rel == doubleDot || strings.HasPrefix(rel, doubleDotDirSeparator))
}

// pleasantPath turns an absolute path into something easily understandable from the current context.
// Inside the project a path relative to the working directory is emitted, with leading "./" unless omitted.
// From outside the project the path is anchored and the project root abbreviated, if requested.
func pleasantPath(absolute string, root string, wd string, collapseRoot bool, omitDotSlash bool) string {
	if wdOutside := wd != root && !isChildOf(wd, root); wdOutside {
		if !collapseRoot || !isChildOf(absolute, root) {
			return absolute
		}
		anchored, _ := filepath.Rel(root, absolute) //error impossible because both are rooted
		return projectRootScheme + anchored
	}

	relative, _ := filepath.Rel(wd, absolute) //error impossible because both are rooted
	if !omitDotSlash && relative != dot && !strings.HasPrefix(relative, doubleDotDirSeparator) && relative != doubleDot {
		return dotDirSeparator + relative
	}
	return relative
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

// mustAbsFilepath calls filepath.Abs and asserts that it is successful
func mustAbsFilepath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}
