package asset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Ref identifies a bookmarked asset by its slash-separated path anchored at the project root.
// Two refs denote the same asset if and only if they are equal.
type Ref string

const RootRef Ref = "."

const parentDir = ".."

func (r Ref) IsZero() bool {
	return r == ""
}

// Native converts the anchored path to the system-native directory separator.
func (r Ref) Native() string {
	return filepath.FromSlash(string(r))
}

func (r Ref) String() string {
	return string(r)
}

// FromAbsolute anchors the given absolute, system-native path at the project root.
func FromAbsolute(root string, absolutePath string) (Ref, error) {
	anchored, inside := anchor(root, absolutePath)
	if !inside {
		return "", fmt.Errorf("path outside project: %s", absolutePath)
	}
	return Ref(filepath.ToSlash(anchored)), nil
}

// FromAnchored accepts a slash-separated path relative to the project root, e.g. from persisted data.
func FromAnchored(anchored string) (Ref, error) {
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(anchored)))
	if anchored == "" || filepath.IsAbs(filepath.FromSlash(anchored)) || clean == parentDir || strings.HasPrefix(clean, parentDir+"/") {
		return "", fmt.Errorf("not an anchored path: %q", anchored)
	}
	return Ref(clean), nil
}

func anchor(root string, absolutePath string) (anchored string, inside bool) {
	anchored, err := filepath.Rel(root, absolutePath)
	if err != nil || anchored == parentDir || strings.HasPrefix(anchored, parentDir+string(filepath.Separator)) {
		return "", false
	}
	return anchored, true
}
