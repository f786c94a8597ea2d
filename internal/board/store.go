package board

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/n2code/favcurator/internal/asset"
)

// Store maintains the pages of a board together with the session cursor (the current page).
// It is not safe for concurrent use, the owner serializes all calls.
type Store struct {
	pages  []Page
	cursor int  //always a valid page index, session only
	dirty  bool //unsaved structural changes
	log    *slog.Logger
}

// NewStore adopts a loaded collection. A nil collection yields a fresh board with one empty page.
// Duplicate entries within a page are dropped on adoption, which counts as a change.
func NewStore(loaded *Collection, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if loaded == nil {
		loaded = NewCollection()
	}
	s := &Store{pages: loaded.Pages(), log: logger}
	if len(s.pages) == 0 {
		s.pages = append(s.pages, NewPage(""))
		s.dirty = true
	}
	for i := range s.pages {
		page := &s.pages[i]
		unique := make([]asset.Ref, 0, len(page.items))
		for _, ref := range page.items {
			if !slices.Contains(unique, ref) {
				unique = append(unique, ref)
			}
		}
		if len(unique) != len(page.items) {
			s.log.Warn("dropped duplicate favorites on load", "page", page.id, "dropped", len(page.items)-len(unique))
			page.items = unique
			s.dirty = true
		}
	}
	return s
}

func (s *Store) current() *Page {
	return &s.pages[s.cursor]
}

func (s *Store) markDirty(reason string) {
	s.dirty = true
	s.log.Debug("board changed", "change", reason, "cursor", s.cursor, "pages", len(s.pages))
}

// AddToCurrentPage appends the ref unless the current page holds it already.
func (s *Store) AddToCurrentPage(ref asset.Ref) (added bool) {
	page := s.current()
	if page.Contains(ref) {
		return false
	}
	page.items = append(page.items, ref)
	s.markDirty("add " + ref.String())
	return true
}

func (s *Store) RemoveFromCurrentPage(index int) (asset.Ref, error) {
	page := s.current()
	if index < 0 || index >= len(page.items) {
		return "", indexError("favorite", index, len(page.items))
	}
	removed := page.items[index]
	page.items = slices.Delete(page.items, index, index+1)
	s.markDirty("remove " + removed.String())
	return removed, nil
}

// MoveWithinCurrentPage takes the entry at fromIndex out and reinserts it so that it ends up at toIndex.
// All other entries keep their relative order.
func (s *Store) MoveWithinCurrentPage(fromIndex int, toIndex int) error {
	page := s.current()
	if fromIndex < 0 || fromIndex >= len(page.items) {
		return indexError("source", fromIndex, len(page.items))
	}
	if toIndex < 0 || toIndex >= len(page.items) {
		return indexError("target", toIndex, len(page.items))
	}
	if fromIndex == toIndex {
		return nil
	}
	moved := page.items[fromIndex]
	page.items = slices.Delete(page.items, fromIndex, fromIndex+1)
	page.items = slices.Insert(page.items, toIndex, moved)
	s.markDirty(fmt.Sprintf("move %d to %d", fromIndex, toIndex))
	return nil
}

func (s *Store) CurrentPage() Page {
	return s.current().clone()
}

func (s *Store) Pages() []Page {
	views := make([]Page, len(s.pages))
	for i, page := range s.pages {
		views[i] = page.clone()
	}
	return views
}

func (s *Store) PageCount() int {
	return len(s.pages)
}

func (s *Store) Cursor() int {
	return s.cursor
}

// GoToPage only navigates, the cursor is not persisted and hence the board does not become dirty.
func (s *Store) GoToPage(index int) error {
	if index < 0 || index >= len(s.pages) {
		return indexError("page", index, len(s.pages))
	}
	s.cursor = index
	return nil
}

// NextPage advances the cursor. On the last page a new empty page is appended and becomes current.
func (s *Store) NextPage() {
	if s.cursor == len(s.pages)-1 {
		s.pages = append(s.pages, NewPage(""))
		s.cursor++
		s.markDirty("append page")
		return
	}
	s.cursor++
}

func (s *Store) PreviousPage() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// DeleteCurrentPage refuses to delete the only page.
func (s *Store) DeleteCurrentPage() error {
	if len(s.pages) == 1 {
		return fmt.Errorf("the last remaining page cannot be deleted: %w", ErrInvalidOperation)
	}
	deleted := s.pages[s.cursor].id
	s.pages = slices.Delete(s.pages, s.cursor, s.cursor+1)
	s.cursor = min(s.cursor, len(s.pages)-1)
	s.markDirty("delete page " + deleted.String())
	return nil
}

// RenameCurrentPage sets the page name, an empty name makes the page untitled.
func (s *Store) RenameCurrentPage(name string) (changed bool) {
	name = strings.TrimSpace(name)
	page := s.current()
	if page.name == name {
		return false
	}
	page.name = name
	s.markDirty("rename page")
	return true
}

// PurgeCurrentPage removes every entry of the current page for which keep returns false.
func (s *Store) PurgeCurrentPage(keep func(asset.Ref) bool) (removed []asset.Ref) {
	page := s.current()
	kept := page.items[:0:0]
	for _, ref := range page.items {
		if keep(ref) {
			kept = append(kept, ref)
		} else {
			removed = append(removed, ref)
		}
	}
	if len(removed) > 0 {
		page.items = kept
		s.markDirty(fmt.Sprintf("purge %d", len(removed)))
	}
	return
}

func (s *Store) IsDirty() bool {
	return s.dirty
}

func (s *Store) ClearDirty() {
	s.dirty = false
}

// Snapshot copies the complete board for persistence.
func (s *Store) Snapshot() *Collection {
	return NewCollection(s.pages...)
}
