package favcurator

import (
	"cmp"
	"fmt"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	out "github.com/n2code/favcurator/internal/output"
)

func (f *favcurator) entryLabel(e Entry) string {
	name := e.Name
	if e.Folder {
		name += "/"
	}
	switch {
	case !e.Valid:
		return f.printer.Sprintf("%s%s [missing]%s", out.Red, name, out.Reset)
	case e.Folder:
		return f.printer.Sprintf("%s%s%s", out.Cyan, name, out.Reset)
	default:
		return name
	}
}

func (f *favcurator) PrintBoard(all bool) {
	tree := out.NewVisualBoardTree(f.displayablePath(f.root, false, true) + " [project root]")
	cursor := f.store.Cursor()
	for position, page := range f.store.Pages() {
		label := fmt.Sprintf("%s (%d)", page.Title(position), page.Len())
		if position == cursor {
			label = f.printer.Sprintf("%s%s%s", out.BoldIntensity, label, out.NormalIntensity)
		}
		branch := tree.InsertPage(label)
		if !all && position != cursor {
			continue
		}
		for _, ref := range page.Items() {
			branch.InsertEntry(f.entryLabel(f.entry(ref)))
		}
	}
	f.Print(out.Required, "%s", tree.Render())
	if f.store.IsDirty() {
		f.Print(out.Normal, "%s(unsaved changes)%s\n", out.FaintIntensity, out.Reset)
	}
}

func (f *favcurator) PrintPage() {
	listing := f.CurrentPage()
	f.Print(out.Normal, "%s%s%s [%d/%d]\n", out.BoldIntensity, listing.Title, out.NormalIntensity, listing.Position+1, listing.PageCount)
	if len(listing.Entries) == 0 {
		f.Print(out.Normal, "<no favorites>\n")
		return
	}
	for i, e := range listing.Entries {
		f.Print(out.Required, "%3d  %s\n", i+1, f.entryLabel(e))
		f.Print(out.Verbose, "     %s%s%s\n", out.FaintIntensity, f.displayablePath(f.resolver.PathOf(e.Ref), true, false), out.Reset)
	}
}

// typoTolerance grows with the term length: 1 edit per 3 characters.
func typoTolerance(term string) int {
	return utf8.RuneCountInString(term) / 3
}

func (f *favcurator) Search(term string) (results []SearchResult) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	tolerance := typoTolerance(term)
	for position, page := range f.store.Pages() {
		for index, ref := range page.Items() {
			e := f.entry(ref)
			name := strings.ToLower(e.Name)
			distance := 0
			switch {
			case strings.Contains(name, term):
			case e.DocumentId != "" && strings.Contains(strings.ToLower(e.DocumentId), term):
			default:
				stem := strings.TrimSuffix(name, path.Ext(name))
				distance = min(levenshtein.ComputeDistance(term, name), levenshtein.ComputeDistance(term, stem))
				if distance > tolerance {
					continue
				}
			}
			results = append(results, SearchResult{Page: position, PageTitle: page.Title(position), Index: index, Entry: e, Distance: distance})
		}
	}
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	f.log.Debug("search done", "term", term, "tolerance", tolerance, "hits", len(results))
	return
}
