package browse

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Folder   lipgloss.Style
	Missing  lipgloss.Style
	Empty    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Tab:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		TabOn:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
		Item:     lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("212")).Bold(true),
		Folder:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Missing:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
