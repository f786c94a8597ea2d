package favcurator

import (
	"github.com/n2code/favcurator/internal/asset"
)

// Favcurator lets you work with the favorites board of a project whose handle was retrieved using New, Open, or Attach.
// A handle is meant for a single thread of control, e.g. the event loop of a user interface.
type Favcurator interface {

	// HandleDrop adds the given assets to the current page in order. Assets already on the page are skipped silently.
	// Changes need to be committed with PersistChanges.
	HandleDrop(items []asset.Ref) (added int)

	// DropPaths converts file system paths (relative to the working directory or absolute) and drops them on the current page.
	// Paths outside the project or of non-existing files are skipped and reported in the returned error.
	// Changes need to be committed with PersistChanges.
	DropPaths(paths []string) (added int, err error)

	// HandleActivate decides how to open the favorite at the given index of the current page:
	// folders are navigated to, everything else is selected.
	HandleActivate(index int) (Activation, error)

	// HandleRemoveRequest removes the favorite at the given index of the current page.
	// Changes need to be committed with PersistChanges.
	HandleRemoveRequest(index int) (asset.Ref, error)

	// HandleReorder moves the favorite at index from so that it ends up at index to.
	// Changes need to be committed with PersistChanges.
	HandleReorder(from int, to int) error

	// HandlePageNav switches to the previous or next page. Going past the last page creates a new empty page.
	HandlePageNav(direction Direction)

	// HandleGoToPage jumps to the page at the given index, unlike HandlePageNav no page is ever created.
	HandleGoToPage(index int) error

	// HandleDeletePage deletes the current page. The last remaining page cannot be deleted.
	// Changes need to be committed with PersistChanges.
	HandleDeletePage() error

	// HandleRenamePage names the current page, an empty name removes the name.
	// Changes need to be committed with PersistChanges.
	HandleRenamePage(name string)

	// CurrentPage lists the favorites of the current page with everything needed to present them.
	CurrentPage() PageListing

	// Pages summarizes all pages in order.
	Pages() []PageSummary

	PageCount() int

	// HasUnsavedChanges reports whether PersistChanges would write anything.
	HasUnsavedChanges() bool

	// PersistChanges writes the board if it has unsaved changes.
	PersistChanges() error

	// Close persists pending changes and releases the storage.
	Close() error

	// PrintBoard outputs the pages as a tree, uncommitted changes included.
	// Only the favorites of the current page are listed unless all is set.
	PrintBoard(all bool)

	// PrintPage outputs the favorites of the current page as a numbered list.
	PrintPage()

	// Search matches the term against the names of all favorites on all pages, tolerating typos.
	// Parts of ndoc document IDs are matched as well.
	Search(term string) []SearchResult

	// InteractivePrune offers to remove favorites of the current page whose assets do not exist anymore.
	// Changes need to be committed with PersistChanges.
	InteractivePrune(choice RequestChoice) (removed int, cancelled bool)

	// Root yields the absolute path of the project root directory.
	Root() string
}

type Direction int

const (
	Previous Direction = iota
	Next
)

type ActivationKind int

const (
	Navigate ActivationKind = iota //open the folder in a file browser
	Select                         //select the asset itself
)

// Activation tells the presentation layer what to do with an activated favorite.
type Activation struct {
	Kind ActivationKind
	Ref  asset.Ref
	Path string //absolute, system-native
}

// Entry describes a single favorite for presentation.
type Entry struct {
	Ref        asset.Ref
	Name       string
	Folder     bool
	Valid      bool   //false if the asset does not exist (anymore)
	DocumentId string //ndoc ID extracted from the filename, if any
}

type PageListing struct {
	Position  int //0-based
	Title     string
	PageCount int
	Entries   []Entry
}

type PageSummary struct {
	Position int
	Title    string
	Count    int
	Current  bool
}

// SearchResult locates a matching favorite on the board.
type SearchResult struct {
	Page      int //0-based page position
	PageTitle string
	Index     int //0-based position on the page
	Entry     Entry
	Distance  int //0 for substring and ID matches
}

// RequestChoice represents a single-choice decision callback, the first option is considered the default "yes"-like choice.
// If the choice is aborted an empty string must be returned.
// If cleanup is set the implementation is recommended to remove the choice presentation after selection.
type RequestChoice func(request string, options []string, cleanup bool) (choice string)

const ChoiceAborted = ""
