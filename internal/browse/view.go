package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (b Browser) View() string {
	if b.mode == ModeRename {
		return b.renderRename()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		b.renderTabs(),
		"",
		b.renderEntries(),
		"",
		b.renderStatus(),
		b.renderHelp(),
	)
}

func (b Browser) renderTabs() string {
	tabs := make([]string, 0, len(b.pages))
	for _, page := range b.pages {
		label := fmt.Sprintf("%s (%d)", page.Title, page.Count)
		if page.Current {
			tabs = append(tabs, b.styles.TabOn.Render(label))
		} else {
			tabs = append(tabs, b.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderEntries keeps the cursor visible if the page is longer than the window.
func (b Browser) renderEntries() string {
	if len(b.listing.Entries) == 0 {
		return b.styles.Empty.Render("  no favorites on this page")
	}
	visible := max(1, b.height-6)
	offset := 0
	if b.cursor >= visible {
		offset = b.cursor - visible + 1
	}
	var lines []string
	for i, entry := range b.listing.Entries {
		if i < offset || i >= offset+visible {
			continue
		}
		label := entry.Name
		switch {
		case !entry.Valid:
			label = b.styles.Missing.Render(label)
		case entry.Folder:
			label = b.styles.Folder.Render(label + "/")
		}
		if entry.DocumentId != "" {
			label += b.styles.Help.Render(" [" + entry.DocumentId + "]")
		}
		line := fmt.Sprintf("%2d  %s", i+1, label)
		if i == b.cursor {
			lines = append(lines, b.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, b.styles.Item.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (b Browser) renderStatus() string {
	text := fmt.Sprintf("page %d/%d", b.listing.Position+1, b.listing.PageCount)
	if b.api.HasUnsavedChanges() {
		text += " • modified"
	}
	bar := b.styles.Status.Render(text)
	if b.status == "" {
		return bar
	}
	if b.failed {
		return bar + " " + b.styles.Error.Render(b.status)
	}
	return bar + " " + b.status
}

func (b Browser) renderHelp() string {
	var parts []string
	for _, binding := range b.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return b.styles.Help.Width(max(20, b.width)).Render(strings.Join(parts, " • "))
}

func (b Browser) renderRename() string {
	content := b.styles.Title.Render("Rename page") + "\n\n" + b.nameInput.View() + "\n\n" + b.styles.Help.Render("enter confirm • esc cancel • empty name resets")
	return b.styles.Box.Render(content)
}
