package favcurator

import (
	"errors"
	"fmt"

	"github.com/n2code/favcurator/internal/asset"
	"github.com/n2code/favcurator/internal/board"
	out "github.com/n2code/favcurator/internal/output"
)

func (f *favcurator) HandleDrop(items []asset.Ref) (added int) {
	for _, item := range items {
		ref, err := asset.FromAnchored(string(item))
		if err != nil {
			f.log.Warn("drop skipped, not an asset of the project", "ref", item)
			continue
		}
		if f.store.AddToCurrentPage(ref) {
			added++
			f.Print(out.Verbose, "Added %s\n", f.resolver.DisplayName(ref))
		} else {
			f.log.Debug("drop skipped, already on page", "ref", ref)
		}
	}
	return
}

func (f *favcurator) DropPaths(paths []string) (added int, err error) {
	var refs []asset.Ref
	var problems []error
	for _, path := range paths {
		absolute := mustAbsFilepath(path)
		ref, anchorErr := asset.FromAbsolute(f.root, absolute)
		if anchorErr != nil {
			problems = append(problems, fmt.Errorf("%w: %s", ErrPathOutsideProject, path))
			continue
		}
		if !f.resolver.IsValid(ref) {
			problems = append(problems, fmt.Errorf("%w: %s", ErrAssetMissing, path))
			continue
		}
		refs = append(refs, ref)
	}
	added = f.HandleDrop(refs)
	if len(problems) > 0 {
		err = newCommandError(fmt.Sprintf("%d of %d %s skipped", len(problems), len(paths), out.Plural(len(paths), "path", "paths")), errors.Join(problems...))
	}
	return
}

func (f *favcurator) HandleActivate(index int) (Activation, error) {
	items := f.store.CurrentPage().Items()
	if index < 0 || index >= len(items) {
		return Activation{}, fmt.Errorf("favorite index %d not in [0, %d): %w", index, len(items), board.ErrIndexOutOfRange)
	}
	ref := items[index]
	activation := Activation{Kind: Select, Ref: ref, Path: f.resolver.PathOf(ref)}
	if f.resolver.IsFolder(ref) {
		activation.Kind = Navigate
	}
	f.log.Debug("favorite activated", "ref", ref, "navigate", activation.Kind == Navigate)
	return activation, nil
}

func (f *favcurator) HandleRemoveRequest(index int) (asset.Ref, error) {
	removed, err := f.store.RemoveFromCurrentPage(index)
	if err != nil {
		return "", err
	}
	f.Print(out.Verbose, "Removed %s\n", f.resolver.DisplayName(removed))
	return removed, nil
}

func (f *favcurator) HandleReorder(from int, to int) error {
	return f.store.MoveWithinCurrentPage(from, to)
}

func (f *favcurator) HandlePageNav(direction Direction) {
	switch direction {
	case Previous:
		f.store.PreviousPage()
	case Next:
		f.store.NextPage()
	}
}

func (f *favcurator) HandleGoToPage(index int) error {
	return f.store.GoToPage(index)
}

func (f *favcurator) HandleDeletePage() error {
	deleted := f.store.CurrentPage().Title(f.store.Cursor())
	if err := f.store.DeleteCurrentPage(); err != nil {
		return err
	}
	f.Print(out.Verbose, "Deleted %s\n", deleted)
	return nil
}

func (f *favcurator) HandleRenamePage(name string) {
	if !f.store.RenameCurrentPage(name) {
		f.log.Debug("page name unchanged")
	}
}

func (f *favcurator) entry(ref asset.Ref) Entry {
	e := Entry{
		Ref:    ref,
		Name:   f.resolver.DisplayName(ref),
		Folder: f.resolver.IsFolder(ref),
		Valid:  f.resolver.IsValid(ref),
	}
	if text, _, ok := asset.DocumentId(ref); ok {
		e.DocumentId = text
	}
	return e
}

func (f *favcurator) CurrentPage() PageListing {
	page := f.store.CurrentPage()
	listing := PageListing{
		Position:  f.store.Cursor(),
		Title:     page.Title(f.store.Cursor()),
		PageCount: f.store.PageCount(),
		Entries:   make([]Entry, 0, page.Len()),
	}
	for _, ref := range page.Items() {
		listing.Entries = append(listing.Entries, f.entry(ref))
	}
	return listing
}

func (f *favcurator) Pages() []PageSummary {
	pages := f.store.Pages()
	summaries := make([]PageSummary, len(pages))
	for i, page := range pages {
		summaries[i] = PageSummary{Position: i, Title: page.Title(i), Count: page.Len(), Current: i == f.store.Cursor()}
	}
	return summaries
}

func (f *favcurator) PageCount() int {
	return f.store.PageCount()
}
