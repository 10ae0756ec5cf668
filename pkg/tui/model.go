package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/utils"
)

// DefaultViewWidth is used until the terminal reports its size
const DefaultViewWidth = 60

// wheelRows is how many rows one mouse wheel notch scrolls
const wheelRows = 3

// Model is a bubbletea host for one dropdown controller. The controller works
// in terminal lines, so ItemExtent is normally 1.
type Model struct {
	ctl    *dropdown.Controller
	input  textinput.Model
	keys   keyMap
	logger *utils.Logger

	title  string
	cursor int // position in the filtered list
	query  string
	width  int
	height int

	// value is shared with the controller's OnChange hook
	value    *dropdown.Selection
	quitting bool
}

// NewModel mounts a controller over set. Every selection change is applied
// back to the controller, and onChange (if any) sees it too.
func NewModel(title string, set *dropdown.OptionSet, initial dropdown.Selection, settings dropdown.Settings, logger *utils.Logger) Model {
	value := initial.WithMode(settings.Mode)
	onChange := settings.OnChange

	var ctl *dropdown.Controller
	settings.OnChange = func(next dropdown.Selection) {
		value = next
		ctl.SetValue(next)
		if logger != nil {
			logger.Logf("Selection: %d option(s) %v", next.Len(), next.Keys())
		}
		if onChange != nil {
			onChange(next)
		}
	}
	ctl = dropdown.New(set, value, settings)

	ti := textinput.New()
	ti.Prompt = "🔍 "
	ti.Placeholder = ctl.Settings().SearchPlaceholder
	ti.CharLimit = 256
	ti.Width = DefaultViewWidth - 8

	return Model{
		ctl:    ctl,
		input:  ti,
		keys:   defaultKeyMap(),
		logger: logger,
		title:  title,
		width:  DefaultViewWidth,
		value:  &value,
	}
}

// Controller returns the controller the model drives
func (m Model) Controller() *dropdown.Controller {
	return m.ctl
}

// Value returns the current selection
func (m Model) Value() dropdown.Selection {
	return *m.value
}

// Cursor returns the highlighted position in the filtered list
func (m Model) Cursor() int {
	return m.cursor
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.menuWidth() - 8
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		extent := m.ctl.Settings().ItemExtent
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.event("wheel_up", m.ctl.ScrollBy(-wheelRows*extent))
		case tea.MouseButtonWheelDown:
			m.event("wheel_down", m.ctl.ScrollBy(wheelRows*extent))
		}
		m.followScroll()
		return m, nil

	case tea.KeyMsg:
		if m.ctl.IsOpen() {
			cmd = m.updateOpen(msg)
		} else {
			cmd = m.updateClosed(msg)
		}
		m.sync()
		if m.quitting {
			return m, tea.Quit
		}
		return m, cmd
	}

	return m, nil
}

func (m *Model) updateClosed(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "esc":
		m.quitting = true
		return nil
	case key.Matches(msg, m.keys.Toggle):
		m.event("toggle_open", m.ctl.ToggleOpen())
		if m.ctl.IsOpen() && m.ctl.Settings().Searchable {
			return m.input.Focus()
		}
	}
	return nil
}

func (m *Model) updateOpen(msg tea.KeyMsg) tea.Cmd {
	page := m.ctl.Settings().Capacity
	n := len(m.ctl.Filtered())

	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
	case key.Matches(msg, m.keys.Close):
		m.event("outside", m.ctl.OutsideInteraction())
	case key.Matches(msg, m.keys.Select):
		m.selectCursor()
	case key.Matches(msg, m.keys.SelectAll):
		m.event("select_all", m.ctl.SelectAllOrNone())
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.pageScroll(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.pageScroll(page)
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-n)
	case key.Matches(msg, m.keys.End):
		m.moveCursor(n)
	default:
		if !m.ctl.Settings().Searchable {
			if msg.String() == "q" {
				m.quitting = true
			}
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.ctl.State().Query {
			m.event("query", m.ctl.SetQuery(m.input.Value()))
		}
		return cmd
	}
	return nil
}

// sync brings the text input and cursor in line with controller state after
// an event; closing the menu clears the query
func (m *Model) sync() {
	state := m.ctl.State()
	if m.input.Value() != state.Query {
		m.input.SetValue(state.Query)
	}
	if !state.Open {
		m.input.Blur()
		m.cursor = 0
	}
	if state.Query != m.query {
		m.query = state.Query
		m.cursor = 0
	}
	m.clampCursor()
}

func (m *Model) event(name string, applied bool) {
	if m.logger != nil {
		m.logger.LogEvent("tui", name, applied)
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.ctl.ScrollToIndex(m.cursor)
}

// pageScroll moves the viewport by rows and drags the cursor along
func (m *Model) pageScroll(rows int) {
	extent := m.ctl.Settings().ItemExtent
	m.event("scroll", m.ctl.ScrollBy(float64(rows)*extent))
	m.cursor += rows
	m.clampCursor()
	m.followScroll()
}

// followScroll keeps the cursor inside the visible window
func (m *Model) followScroll() {
	w := m.ctl.Descriptor().Window
	if w.End == 0 {
		return
	}
	if m.cursor < w.Start {
		m.cursor = w.Start
	}
	if m.cursor >= w.End {
		m.cursor = w.End - 1
	}
}

func (m *Model) clampCursor() {
	n := len(m.ctl.Filtered())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectCursor() {
	index := m.ctl.Filtered()
	if m.cursor < 0 || m.cursor >= len(index) {
		return
	}
	opt := m.ctl.Options().At(index[m.cursor])
	m.event("select "+opt.Key.String(), m.ctl.SelectOption(opt))
}

func (m Model) menuWidth() int {
	w := m.width
	if w <= 0 || w > DefaultViewWidth {
		w = DefaultViewWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	d := m.ctl.Descriptor()
	width := m.menuWidth()
	inner := width - 4

	var sections []string
	if m.title != "" {
		sections = append(sections, titleStyle.Render(m.title))
	}

	arrow := "▼"
	if d.Open {
		arrow = "▲"
	}
	text := runewidth.Truncate(d.DisplayLabel, inner-2, "...")
	gap := inner - 2 - runewidth.StringWidth(text)
	if gap < 1 {
		gap = 1
	}
	label := text
	if d.Selection.Empty() {
		label = placeholderStyle.Render(text)
	}
	header := label + strings.Repeat(" ", gap) + arrow
	hs := headerStyle
	if d.Disabled {
		hs = disabledHeaderStyle
	}
	sections = append(sections, hs.Width(width-2).Render(header))

	if d.Open {
		sections = append(sections, menuStyle.Width(width-2).Render(m.menuView(d, inner)))
	}

	sections = append(sections, helpStyle.Render(m.help(d)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) menuView(d dropdown.Descriptor, inner int) string {
	var lines []string

	if d.Searchable {
		search := m.input.View()
		if d.Query != "" {
			search += filterStyle.Render(fmt.Sprintf(" (%d/%d)", d.Window.Len, m.ctl.Options().Len()))
		}
		lines = append(lines, search)
	}

	if d.SelectAllLabel != "" {
		lines = append(lines, selectAllStyle.Render("  "+d.SelectAllLabel))
	}

	if d.Empty {
		lines = append(lines, emptyStyle.Render("  "+d.EmptyText))
		return strings.Join(lines, "\n")
	}

	thumb := d.Window.Thumb(len(d.Window.Rows), len(d.Window.Rows))
	for i, row := range d.Window.Rows {
		text := m.rowText(d, row, inner-2)
		pad := inner - 2 - runewidth.StringWidth(text)
		if pad < 0 {
			pad = 0
		}
		style := lipgloss.NewStyle()
		switch {
		case row.Index == m.cursor:
			style = cursorStyle
		case row.Selected:
			style = selectedStyle
		}
		line := style.Render(text) + strings.Repeat(" ", pad)
		if thumb.Size > 0 {
			if i >= thumb.Pos && i < thumb.Pos+thumb.Size {
				line += " " + thumbStyle.Render("┃")
			} else {
				line += " " + trackStyle.Render("│")
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) rowText(d dropdown.Descriptor, row dropdown.Row, width int) string {
	prefix := "  "
	if row.Index == m.cursor {
		prefix = "▶ "
	}
	text := prefix + row.Option.Label
	if d.Mode == dropdown.Multiple {
		box := "[ ] "
		if row.Selected {
			box = "[x] "
		}
		text = prefix + box + row.Option.Label
	} else if row.Selected {
		text += " ✓"
	}
	return runewidth.Truncate(text, width, "...")
}

func (m Model) help(d dropdown.Descriptor) string {
	if d.Disabled {
		return helpLine(m.keys.Quit)
	}
	if !d.Open {
		return helpLine(m.keys.Toggle, m.keys.Quit)
	}
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Close}
	if d.Mode == dropdown.Multiple {
		bindings = append(bindings, m.keys.SelectAll)
	}
	return helpLine(bindings...)
}
