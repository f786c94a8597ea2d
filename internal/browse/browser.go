// Package browse implements an interactive terminal session on a favorites board.
package browse

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/n2code/favcurator"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeRename
)

// RevealFunc presents an activated favorite, e.g. by opening a file manager.
type RevealFunc func(activation favcurator.Activation) error

// Browser is the bubbletea model of a browse session. All board changes go through the handle.
type Browser struct {
	api    favcurator.Favcurator
	keys   KeyMap
	styles Styles
	reveal RevealFunc

	listing favcurator.PageListing
	pages   []favcurator.PageSummary
	cursor  int

	mode      Mode
	nameInput textinput.Model

	status  string
	failed  bool  //status describes an error
	exitErr error //outcome of persisting on quit

	width  int
	height int
}

type Params struct {
	Api    favcurator.Favcurator
	Reveal RevealFunc //optional, activations are only reported if nil
	Keys   *KeyMap    //optional, uses default if nil
	Styles *Styles    //optional, uses default if nil
}

func New(params Params) Browser {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}
	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	nameInput := textinput.New()
	nameInput.CharLimit = 60
	nameInput.Width = 40

	b := Browser{
		api:       params.Api,
		keys:      keys,
		styles:    styles,
		reveal:    params.Reveal,
		nameInput: nameInput,
		width:     80,
		height:    24,
	}
	b.refresh()
	return b
}

// Run blocks until the session ends. Pending changes are persisted on quit.
func Run(api favcurator.Favcurator, reveal RevealFunc) error {
	final, err := tea.NewProgram(New(Params{Api: api, Reveal: reveal}), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	return final.(Browser).Err()
}

func (b *Browser) refresh() {
	b.listing = b.api.CurrentPage()
	b.pages = b.api.Pages()
	if b.cursor >= len(b.listing.Entries) {
		b.cursor = max(0, len(b.listing.Entries)-1)
	}
}

func (b *Browser) inform(format string, a ...interface{}) {
	b.status = fmt.Sprintf(format, a...)
	b.failed = false
}

func (b *Browser) fail(err error) {
	b.status = err.Error()
	b.failed = true
}

func (b Browser) Cursor() int {
	return b.cursor
}

func (b Browser) Mode() Mode {
	return b.mode
}

func (b Browser) Listing() favcurator.PageListing {
	return b.listing
}

func (b Browser) Status() string {
	return b.status
}

// Err yields the result of persisting the board when the session was quit.
func (b Browser) Err() error {
	return b.exitErr
}

type revealedMsg struct {
	name string
	err  error
}

func (b Browser) revealCmd(activation favcurator.Activation, name string) tea.Cmd {
	reveal := b.reveal
	return func() tea.Msg {
		if reveal == nil {
			return revealedMsg{name: name}
		}
		return revealedMsg{name: name, err: reveal(activation)}
	}
}

func (b Browser) Init() tea.Cmd {
	return nil
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case revealedMsg:
		if msg.err != nil {
			b.fail(msg.err)
		} else {
			b.inform("Opened %s", msg.name)
		}
		return b, nil

	case tea.KeyMsg:
		if b.mode == ModeRename {
			return b.updateRename(msg)
		}

		entries := len(b.listing.Entries)
		switch {
		case key.Matches(msg, b.keys.Quit):
			b.exitErr = b.api.PersistChanges()
			return b, tea.Quit

		case key.Matches(msg, b.keys.Down):
			if b.cursor < entries-1 {
				b.cursor++
			}

		case key.Matches(msg, b.keys.Up):
			if b.cursor > 0 {
				b.cursor--
			}

		case key.Matches(msg, b.keys.PrevPage):
			b.api.HandlePageNav(favcurator.Previous)
			b.cursor = 0
			b.refresh()

		case key.Matches(msg, b.keys.NextPage):
			b.api.HandlePageNav(favcurator.Next)
			b.cursor = 0
			b.refresh()

		case key.Matches(msg, b.keys.Open):
			if entries == 0 {
				return b, nil
			}
			activation, err := b.api.HandleActivate(b.cursor)
			if err != nil {
				b.fail(err)
				return b, nil
			}
			return b, b.revealCmd(activation, b.listing.Entries[b.cursor].Name)

		case key.Matches(msg, b.keys.Remove):
			if entries == 0 {
				return b, nil
			}
			name := b.listing.Entries[b.cursor].Name
			if _, err := b.api.HandleRemoveRequest(b.cursor); err != nil {
				b.fail(err)
			} else {
				b.inform("Removed %s", name)
			}
			b.refresh()

		case key.Matches(msg, b.keys.MoveUp):
			if b.cursor > 0 {
				if err := b.api.HandleReorder(b.cursor, b.cursor-1); err != nil {
					b.fail(err)
				} else {
					b.cursor--
				}
				b.refresh()
			}

		case key.Matches(msg, b.keys.MoveDown):
			if b.cursor < entries-1 {
				if err := b.api.HandleReorder(b.cursor, b.cursor+1); err != nil {
					b.fail(err)
				} else {
					b.cursor++
				}
				b.refresh()
			}

		case key.Matches(msg, b.keys.Rename):
			b.mode = ModeRename
			b.nameInput.Reset()
			b.nameInput.Placeholder = b.listing.Title
			return b, b.nameInput.Focus()

		case key.Matches(msg, b.keys.DeletePage):
			title := b.listing.Title
			if err := b.api.HandleDeletePage(); err != nil {
				b.fail(err)
			} else {
				b.inform("Deleted %s", title)
			}
			b.cursor = 0
			b.refresh()

		case key.Matches(msg, b.keys.Save):
			if err := b.api.PersistChanges(); err != nil {
				b.fail(err)
			} else {
				b.inform("Saved")
			}
		}
	}
	return b, nil
}

func (b Browser) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		b.mode = ModeNormal
		b.nameInput.Blur()
		return b, nil
	case tea.KeyEnter:
		b.api.HandleRenamePage(b.nameInput.Value())
		b.mode = ModeNormal
		b.nameInput.Blur()
		b.refresh()
		b.inform("Renamed to %s", b.listing.Title)
		return b, nil
	}
	var cmd tea.Cmd
	b.nameInput, cmd = b.nameInput.Update(msg)
	return b, cmd
}
