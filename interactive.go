package favcurator

import (
	"fmt"

	"github.com/n2code/favcurator/internal/asset"
	out "github.com/n2code/favcurator/internal/output"
)

// InteractivePrune collects all decisions first and applies them at the end, hence cancelling removes nothing.
func (f *favcurator) InteractivePrune(choice RequestChoice) (removed int, cancelled bool) {
	page := f.store.CurrentPage()
	title := page.Title(f.store.Cursor())
	f.Print(out.Verbose, "Pruning %s...\n", title)

	var missing []asset.Ref
	for _, ref := range page.Items() {
		if !f.resolver.IsValid(ref) {
			missing = append(missing, ref)
		}
	}
	count := len(missing)
	if count == 0 {
		f.Print(out.Normal, "No missing favorites on %s.\n", title)
		return
	}

	colored := func(text string) string {
		return f.printer.Sprintf("%s%s%s", out.Red, text, out.DefaultForeground)
	}

	var removeAll, decideIndividually bool
	if count == 1 {
		f.Print(out.Verbose, "1 favorite on %s is %s.\n", title, colored("MISSING"))
		decideIndividually = true
	} else {
		f.Print(out.Verbose, "%d favorites on %s are %s.\n", count, title, colored("MISSING"))
		switch choice(fmt.Sprintf("Remove %d %s favorites?", count, colored("missing")), []string{"All", "Decide individually", "Skip"}, true) {
		case "All":
			removeAll = true
		case "Decide individually":
			decideIndividually = true
		case "Skip":
		case ChoiceAborted:
			cancelled = true
			return
		}
	}

	doomed := make(map[asset.Ref]bool, count)
	for _, ref := range missing {
		displayPath := f.displayablePath(f.resolver.PathOf(ref), true, false)
		doRemove := removeAll
		if decideIndividually {
			options := []string{"Yes", "No", "Info"}
		Decision:
			for {
				switch choice(f.printer.Sprintf("%s%s%s%s [missing]%s - Remove favorite?", out.Red, out.BoldIntensity, f.resolver.DisplayName(ref), out.NormalIntensity, out.DefaultForeground), options, true) {
				case "Yes":
					doRemove = true
					break Decision
				case "No":
					doRemove = false
					break Decision
				case "Info":
					details := f.printer.Sprintf("-> Anchored: %s%s%s", out.FaintIntensity, ref, out.Reset)
					if id, _, ok := asset.DocumentId(ref); ok {
						details += "\n-> Document: " + id
					}
					f.Print(out.Required, "[i] %s\n%s\n", displayPath, out.Indent(4, details))
					options = []string{"Yes", "No"}
				case ChoiceAborted:
					cancelled = true
					return
				}
			}
		}
		if doRemove {
			doomed[ref] = true
			f.Print(out.Normal, "%s [missing] - Marked for removal.\n", displayPath)
		} else {
			f.Print(out.Normal, "%s - Skipped.\n", displayPath)
		}
	}

	removed = len(f.store.PurgeCurrentPage(func(ref asset.Ref) bool { return !doomed[ref] }))
	f.Print(out.Normal, "%s%d missing %s removed.%s\n", out.FaintIntensity, removed, out.Plural(removed, "favorite", "favorites"), out.Reset)
	return
}
