package components

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/ui/core"
)

// DropdownComponent paints a dropdown controller through a core.Renderer and
// translates raw terminal input into controller events
type DropdownComponent struct {
	*core.BaseComponent
	ctl   *dropdown.Controller
	width int

	// cursor is a position in the filtered list
	cursor int
	query  string
}

// NewDropdownComponent creates a component for ctl that is width cells wide
func NewDropdownComponent(id string, ctl *dropdown.Controller, renderer core.Renderer, width int) *DropdownComponent {
	if width < 12 {
		width = 12
	}
	d := &DropdownComponent{
		BaseComponent: core.NewBaseComponent(id, renderer),
		ctl:           ctl,
		width:         width,
	}
	d.OnUnmount(ctl.Subscribe(d.onStateChange))
	return d
}

// onStateChange moves the cursor back to the top whenever the filtered list
// is rebuilt or the menu closes
func (d *DropdownComponent) onStateChange(state dropdown.State) {
	if !state.Open || state.Query != d.query {
		d.cursor = 0
	}
	d.query = state.Query
	d.clampCursor()
	d.MarkDirty()
}

// Cursor returns the highlighted filtered position
func (d *DropdownComponent) Cursor() int {
	return d.cursor
}

// Render draws the current descriptor
func (d *DropdownComponent) Render(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := d.Renderer()
	desc := d.ctl.Descriptor()

	if err := r.Clear(); err != nil {
		return err
	}

	// Header
	arrow := "▼"
	if desc.Open {
		arrow = "▲"
	}
	inner := d.width - 2
	label := core.TruncateString(desc.DisplayLabel, inner-4)
	if desc.Disabled {
		label = core.TruncateString("("+desc.DisplayLabel+")", inner-4)
	}
	if err := r.DrawBox(0, 0, d.width, 3); err != nil {
		return err
	}
	if err := r.DrawText(1, 1, " "+label); err != nil {
		return err
	}
	if err := r.DrawText(d.width-3, 1, arrow); err != nil {
		return err
	}

	if !desc.Open {
		return d.flush(ctx)
	}

	lines := d.menuLines(desc, inner-2)
	if err := r.DrawBox(0, 3, d.width, len(lines)+2); err != nil {
		return err
	}
	for i, line := range lines {
		if err := r.DrawText(1, 4+i, line); err != nil {
			return err
		}
	}

	// Scrollbar over the rows part of the menu
	rowsTop := 4 + len(lines) - len(desc.Window.Rows)
	if thumb := desc.Window.Thumb(len(desc.Window.Rows), len(desc.Window.Rows)); thumb.Size > 0 {
		for i := 0; i < len(desc.Window.Rows); i++ {
			bar := "│"
			if i >= thumb.Pos && i < thumb.Pos+thumb.Size {
				bar = "┃"
			}
			if err := r.DrawText(d.width-2, rowsTop+i, bar); err != nil {
				return err
			}
		}
	}

	if err := r.DrawText(0, 4+len(lines)+1, d.instructions(desc)); err != nil {
		return err
	}
	return d.flush(ctx)
}

func (d *DropdownComponent) flush(ctx context.Context) error {
	if err := d.Renderer().Flush(); err != nil {
		return fmt.Errorf("failed to flush dropdown %s: %w", d.GetID(), err)
	}
	return d.BaseComponent.Render(ctx)
}

// menuLines lays out the open menu: search line, select-all row, then the
// window rows or the empty text
func (d *DropdownComponent) menuLines(desc dropdown.Descriptor, width int) []string {
	var lines []string

	if desc.Searchable {
		search := desc.Query + "_"
		if desc.Query == "" {
			search = desc.SearchPlaceholder
		}
		line := "🔍 " + search
		if desc.Query != "" {
			line += fmt.Sprintf(" (%d/%d)", desc.Window.Len, d.ctl.Options().Len())
		}
		lines = append(lines, core.TruncateString(line, width))
	}

	if desc.SelectAllLabel != "" {
		lines = append(lines, core.TruncateString("  "+desc.SelectAllLabel, width))
	}

	if desc.Empty {
		lines = append(lines, core.TruncateString("  "+desc.EmptyText, width))
		return lines
	}

	for _, row := range desc.Window.Rows {
		lines = append(lines, core.TruncateString(d.rowLine(desc, row), width))
	}
	return lines
}

func (d *DropdownComponent) rowLine(desc dropdown.Descriptor, row dropdown.Row) string {
	prefix := "  "
	if row.Index == d.cursor {
		prefix = "▶ "
	}
	if desc.Mode == dropdown.Multiple {
		box := "[ ] "
		if row.Selected {
			box = "[x] "
		}
		return prefix + box + row.Option.Label
	}
	if row.Selected {
		return prefix + row.Option.Label + " ✓"
	}
	return prefix + row.Option.Label
}

func (d *DropdownComponent) instructions(desc dropdown.Descriptor) string {
	text := "↑↓ Navigate • Enter: Select • Esc: Close"
	if desc.Searchable {
		text += " • Type to search"
	}
	if desc.Mode == dropdown.Multiple {
		text += " • Ctrl+A: " + desc.SelectAllLabel
	}
	return core.TruncateString(text, d.width)
}

// HandleInput handles raw input bytes
func (d *DropdownComponent) HandleInput(input []byte) error {
	if len(input) == 0 {
		return nil
	}

	if !d.ctl.IsOpen() {
		switch {
		case len(input) == 1 && (input[0] == 13 || input[0] == 10 || input[0] == ' '):
			d.ctl.ToggleOpen()
		case len(input) >= 3 && input[0] == 27 && input[1] == '[' && input[2] == 'B':
			d.ctl.ToggleOpen()
		}
		return nil
	}

	if len(input) == 1 {
		switch input[0] {
		case 27: // ESC
			d.ctl.OutsideInteraction()
		case 13, 10: // Enter (CR or LF)
			d.selectCursor()
		case 1: // Ctrl+A
			d.ctl.SelectAllOrNone()
		case 127, 8: // Backspace
			query := d.ctl.State().Query
			if query != "" {
				_, size := utf8.DecodeLastRuneInString(query)
				d.ctl.SetQuery(query[:len(query)-size])
			}
		default:
			if input[0] >= 32 && input[0] <= 126 {
				d.ctl.SetQuery(d.ctl.State().Query + string(input[0]))
			}
		}
		return nil
	}

	if input[0] != 27 {
		// Multi-byte printable text, e.g. a pasted word or a UTF-8 rune
		if utf8.Valid(input) && !strings.ContainsAny(string(input), "\r\n\x1b") {
			d.ctl.SetQuery(d.ctl.State().Query + string(input))
		}
		return nil
	}

	if len(input) >= 3 && input[1] == '[' {
		page := d.ctl.Settings().Capacity
		switch input[2] {
		case 'A': // Up
			d.moveCursor(-1)
		case 'B': // Down
			d.moveCursor(1)
		case '5': // Page Up (ESC [ 5 ~)
			d.moveCursor(-page)
		case '6': // Page Down (ESC [ 6 ~)
			d.moveCursor(page)
		case 'H': // Home
			d.moveCursor(-len(d.ctl.Filtered()))
		case 'F': // End
			d.moveCursor(len(d.ctl.Filtered()))
		}
	}
	// Mouse reports and other sequences are ignored
	return nil
}

func (d *DropdownComponent) moveCursor(delta int) {
	d.cursor += delta
	d.clampCursor()
	d.ctl.ScrollToIndex(d.cursor)
	d.MarkDirty()
}

func (d *DropdownComponent) clampCursor() {
	n := len(d.ctl.Filtered())
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *DropdownComponent) selectCursor() {
	index := d.ctl.Filtered()
	if d.cursor < 0 || d.cursor >= len(index) {
		return
	}
	d.ctl.SelectOption(d.ctl.Options().At(index[d.cursor]))
}
