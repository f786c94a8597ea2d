package asset

import (
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/n2code/ndocid"
)

// Resolver answers questions about assets on behalf of the favorites core.
type Resolver interface {
	DisplayName(ref Ref) string
	IsFolder(ref Ref) bool
	PathOf(ref Ref) string //absolute, system-native
	IsValid(ref Ref) bool
}

// FileResolver resolves refs against a project directory on the local file system.
type FileResolver struct {
	root string //absolute, system-native path
}

func NewFileResolver(absoluteRoot string) FileResolver {
	return FileResolver{root: absoluteRoot}
}

func (r FileResolver) Root() string {
	return r.root
}

func (r FileResolver) DisplayName(ref Ref) string {
	if ref == RootRef {
		return filepath.Base(r.root)
	}
	return path.Base(string(ref))
}

func (r FileResolver) IsFolder(ref Ref) bool {
	stat, err := os.Stat(r.PathOf(ref))
	return err == nil && stat.IsDir()
}

func (r FileResolver) PathOf(ref Ref) string {
	return filepath.Join(r.root, ref.Native())
}

func (r FileResolver) IsValid(ref Ref) bool {
	if ref.IsZero() {
		return false
	}
	_, err := os.Stat(r.PathOf(ref))
	return err == nil
}

//represents file.23456X777.ndoc.ext or file_without_ext.23456X777.ndoc or .23456X777.ndoc.ext_only
var ndocFileNameRegex = regexp.MustCompile(`^.*\.([0-9A-Za-z]+)\.ndoc(?:\.[^.]*)?$`)

// DocumentId extracts the ndoc document ID from a standardized filename, if there is a valid one.
func DocumentId(ref Ref) (text string, id uint64, ok bool) {
	matches := ndocFileNameRegex.FindStringSubmatch(path.Base(string(ref)))
	if matches == nil {
		return "", 0, false
	}
	numId, err, complete := ndocid.Decode(matches[1])
	if err != nil || !complete {
		return "", 0, false
	}
	return matches[1], numId, true
}
