package board

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/n2code/favcurator/internal/asset"
)

// Page is an ordered, duplicate-free sequence of favorites.
// Values handed out by this package are copies, changing them does not affect the board.
type Page struct {
	id    uuid.UUID
	name  string      //optional, empty means untitled
	items []asset.Ref //insertion order unless reordered
}

// Collection is the persisted form of a board: all pages in order, at least one.
type Collection struct {
	pages []Page
}

// NewPage creates an empty page with a fresh ID.
func NewPage(name string) Page {
	return Page{id: uuid.New(), name: name}
}

// RestorePage recreates a page from persisted data. Items are taken as given, the store repairs duplicates on adoption.
func RestorePage(id uuid.UUID, name string, items []asset.Ref) Page {
	return Page{id: id, name: name, items: slices.Clone(items)}
}

func (p Page) ID() uuid.UUID {
	return p.id
}

func (p Page) Name() string {
	return p.name
}

// Title yields the name or, for untitled pages, a label derived from the 0-based position.
func (p Page) Title(position int) string {
	if p.name != "" {
		return p.name
	}
	return fmt.Sprintf("Page %d", position+1)
}

func (p Page) Items() []asset.Ref {
	return slices.Clone(p.items)
}

func (p Page) Len() int {
	return len(p.items)
}

func (p Page) Contains(ref asset.Ref) bool {
	return slices.Contains(p.items, ref)
}

func (p Page) clone() Page {
	p.items = slices.Clone(p.items)
	return p
}

// NewCollection assembles pages into a collection. Without pages a single empty page is created.
func NewCollection(pages ...Page) *Collection {
	c := &Collection{pages: make([]Page, 0, max(1, len(pages)))}
	for _, page := range pages {
		c.pages = append(c.pages, page.clone())
	}
	if len(c.pages) == 0 {
		c.pages = append(c.pages, NewPage(""))
	}
	return c
}

func (c *Collection) Pages() []Page {
	views := make([]Page, len(c.pages))
	for i, page := range c.pages {
		views[i] = page.clone()
	}
	return views
}

func (c *Collection) PageCount() int {
	return len(c.pages)
}
