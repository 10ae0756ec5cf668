package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alantheprice/dropdown/pkg/dropdown"
)

func items(n int) *dropdown.OptionSet {
	opts := make([]dropdown.Option, n)
	for i := range opts {
		opts[i] = dropdown.NewOption(fmt.Sprintf("item-%d", i+1), fmt.Sprintf("Item %d", i+1))
	}
	return dropdown.MustOptionSet(opts...)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelOpensAndSelects(t *testing.T) {
	var changes int
	m := NewModel("Fruit", dropdown.MustOptionSet(
		dropdown.NewOption("apple", "Apple"),
		dropdown.NewOption("banana", "Banana"),
		dropdown.NewOption("cherry", "Cherry"),
	), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{
		ItemExtent: 1,
		OnChange:   func(dropdown.Selection) { changes++ },
	}, nil)

	assert.Contains(t, m.View(), "Select...")
	assert.NotContains(t, m.View(), "Banana")

	m = send(t, m, keyType(tea.KeyEnter))
	require.True(t, m.Controller().IsOpen())
	assert.Contains(t, m.View(), "▶ Apple")

	m = send(t, m, keyType(tea.KeyDown), keyType(tea.KeyEnter))
	assert.False(t, m.Controller().IsOpen())
	assert.Equal(t, 1, changes)
	assert.True(t, m.Value().Contains(dropdown.StringKey("banana")))
	assert.Contains(t, m.View(), "Banana")
}

func TestModelSearch(t *testing.T) {
	m := NewModel("", items(100), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{
		Searchable: true,
		ItemExtent: 1,
		Capacity:   5,
	}, nil)

	m = send(t, m, keyType(tea.KeyEnter), runes("9"), runes("9"))
	assert.Equal(t, "99", m.Controller().State().Query)
	assert.Len(t, m.Controller().Filtered(), 1)
	assert.Contains(t, m.View(), "Item 99")
	assert.Contains(t, m.View(), "(1/100)")

	m = send(t, m, keyType(tea.KeyBackspace))
	assert.Equal(t, "9", m.Controller().State().Query)

	m = send(t, m, keyType(tea.KeyEsc))
	assert.False(t, m.Controller().IsOpen())
	assert.Equal(t, "", m.Controller().State().Query, "closing clears the query")

	m = send(t, m, keyType(tea.KeyEnter))
	assert.Len(t, m.Controller().Filtered(), 100)
}

func TestModelEmptyResult(t *testing.T) {
	m := NewModel("", items(3), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{Searchable: true}, nil)
	m = send(t, m, keyType(tea.KeyEnter), runes("zzz"))
	assert.Contains(t, m.View(), "No options found")
}

func TestModelCursorScrollsWindow(t *testing.T) {
	m := NewModel("", items(1000), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{
		ItemExtent: 1,
		Capacity:   10,
	}, nil)
	m = send(t, m, keyType(tea.KeyEnter))

	for i := 0; i < 12; i++ {
		m = send(t, m, keyType(tea.KeyDown))
	}
	assert.Equal(t, 12, m.Cursor())
	w := m.Controller().Descriptor().Window
	assert.Equal(t, 3, w.Start)
	assert.Equal(t, 13, w.End)

	m = send(t, m, keyType(tea.KeyEnd))
	assert.Equal(t, 999, m.Cursor())
	assert.Equal(t, 1000, m.Controller().Descriptor().Window.End)
	assert.Contains(t, m.View(), "Item 1000")

	m = send(t, m, keyType(tea.KeyPgUp))
	assert.Equal(t, 989, m.Cursor())
	assert.Equal(t, 980.0, m.Controller().State().Scroll)
}

func TestModelMouseWheel(t *testing.T) {
	m := NewModel("", items(100), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{
		ItemExtent: 1,
		Capacity:   5,
	}, nil)
	m = send(t, m, keyType(tea.KeyEnter))

	m = send(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 3.0, m.Controller().State().Scroll)
	assert.Equal(t, 3, m.Cursor(), "cursor stays inside the window")

	m = send(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0.0, m.Controller().State().Scroll)
}

func TestModelMultipleSelectAll(t *testing.T) {
	m := NewModel("", items(20), dropdown.EmptySelection(dropdown.Multiple), dropdown.Settings{
		Mode:       dropdown.Multiple,
		ItemExtent: 1,
		Capacity:   5,
	}, nil)
	m = send(t, m, keyType(tea.KeyEnter))
	assert.Contains(t, m.View(), "Select All")

	m = send(t, m, keyType(tea.KeyCtrlA))
	assert.Equal(t, 20, m.Value().Len())
	assert.True(t, m.Controller().IsOpen())
	assert.Contains(t, m.View(), "Deselect All")
	assert.Contains(t, m.View(), "[x] Item 1")

	m = send(t, m, keyType(tea.KeyEnter))
	assert.Equal(t, 19, m.Value().Len(), "enter toggles the cursor row")
	assert.Contains(t, m.View(), "19 items selected")
}

func TestModelDisabled(t *testing.T) {
	m := NewModel("", items(3), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{Disabled: true}, nil)
	m = send(t, m, keyType(tea.KeyEnter))
	assert.False(t, m.Controller().IsOpen())
	assert.True(t, strings.Contains(m.View(), "q: quit"))
}

func TestModelQuit(t *testing.T) {
	m := NewModel("", items(3), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{}, nil)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, "", next.View())
}

func TestModelWindowSize(t *testing.T) {
	m := NewModel("", items(3), dropdown.EmptySelection(dropdown.Single), dropdown.Settings{}, nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 20})
	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, len([]rune(stripANSI(line))), 30)
	}
}

// stripANSI removes SGR escape sequences from lipgloss output
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
