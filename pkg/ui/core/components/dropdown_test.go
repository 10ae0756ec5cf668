package components

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/ui/core"
)

// mockRenderer captures rendering operations for testing
type mockRenderer struct {
	operations []string
	cleared    bool
}

func (m *mockRenderer) Clear() error {
	m.cleared = true
	m.operations = append(m.operations, "CLEAR")
	return nil
}

func (m *mockRenderer) DrawText(x, y int, text string) error {
	m.operations = append(m.operations, "TEXT", text)
	return nil
}

func (m *mockRenderer) DrawBox(x, y, width, height int) error {
	m.operations = append(m.operations, "BOX")
	return nil
}

func (m *mockRenderer) Flush() error {
	m.operations = append(m.operations, "FLUSH")
	return nil
}

func (m *mockRenderer) has(substr string) bool {
	for _, op := range m.operations {
		if strings.Contains(op, substr) {
			return true
		}
	}
	return false
}

func newTestController(n int, settings dropdown.Settings) *dropdown.Controller {
	opts := make([]dropdown.Option, n)
	for i := range opts {
		opts[i] = dropdown.NewOption(fmt.Sprintf("item-%d", i+1), fmt.Sprintf("Item %d", i+1))
	}
	var ctl *dropdown.Controller
	settings.OnChange = func(s dropdown.Selection) { ctl.SetValue(s) }
	ctl = dropdown.New(dropdown.MustOptionSet(opts...), dropdown.EmptySelection(settings.Mode), settings)
	return ctl
}

func TestDropdownComponent_RenderClosed(t *testing.T) {
	ctl := newTestController(3, dropdown.Settings{})
	renderer := &mockRenderer{}
	dd := NewDropdownComponent("test-dropdown", ctl, renderer, 40)

	require.NoError(t, dd.Render(context.Background()))

	assert.True(t, renderer.cleared)
	assert.True(t, renderer.has("Select..."))
	assert.True(t, renderer.has("▼"))
	assert.False(t, renderer.has("Item 1"), "closed menu draws no rows")
	assert.Equal(t, "FLUSH", renderer.operations[len(renderer.operations)-1])
}

func TestDropdownComponent_RenderOpen(t *testing.T) {
	ctl := newTestController(3, dropdown.Settings{Searchable: true, Mode: dropdown.Multiple})
	renderer := &mockRenderer{}
	dd := NewDropdownComponent("test-dropdown", ctl, renderer, 40)

	require.NoError(t, dd.HandleInput([]byte{13}))
	require.True(t, ctl.IsOpen())
	require.NoError(t, dd.Render(context.Background()))

	assert.True(t, renderer.has("▲"))
	assert.True(t, renderer.has("Search..."))
	assert.True(t, renderer.has("Select All"))
	assert.True(t, renderer.has("▶ [ ] Item 1"))
	assert.True(t, renderer.has("  [ ] Item 3"))
}

func TestDropdownComponent_Search(t *testing.T) {
	ctl := newTestController(20, dropdown.Settings{Searchable: true})
	renderer := &mockRenderer{}
	dd := NewDropdownComponent("test-dropdown", ctl, renderer, 40)

	dd.HandleInput([]byte{13})
	dd.HandleInput([]byte{'1'})
	dd.HandleInput([]byte{'5'})

	assert.Equal(t, "15", ctl.State().Query)
	assert.Len(t, ctl.Filtered(), 1)

	require.NoError(t, dd.Render(context.Background()))
	assert.True(t, renderer.has("15_ (1/20)"))
	assert.True(t, renderer.has("Item 15"))
}

func TestDropdownComponent_Backspace(t *testing.T) {
	ctl := newTestController(2, dropdown.Settings{Searchable: true})
	dd := NewDropdownComponent("test-dropdown", ctl, &mockRenderer{}, 40)

	dd.HandleInput([]byte{13})
	dd.HandleInput([]byte{'z'})
	assert.Empty(t, ctl.Filtered())

	dd.HandleInput([]byte{127})
	assert.Equal(t, "", ctl.State().Query)
	assert.Len(t, ctl.Filtered(), 2)
}

func TestDropdownComponent_EmptyText(t *testing.T) {
	ctl := newTestController(2, dropdown.Settings{Searchable: true})
	renderer := &mockRenderer{}
	dd := NewDropdownComponent("test-dropdown", ctl, renderer, 40)

	dd.HandleInput([]byte{13})
	dd.HandleInput([]byte("zz"))
	require.NoError(t, dd.Render(context.Background()))
	assert.True(t, renderer.has("No options found"))
}

func TestDropdownComponent_Navigation(t *testing.T) {
	ctl := newTestController(100, dropdown.Settings{ItemExtent: 1, Capacity: 5})
	dd := NewDropdownComponent("test-dropdown", ctl, &mockRenderer{}, 40)

	dd.HandleInput([]byte{27, '[', 'B'}) // Down arrow opens
	require.True(t, ctl.IsOpen())
	assert.Equal(t, 0, dd.Cursor())

	for i := 0; i < 6; i++ {
		dd.HandleInput([]byte{27, '[', 'B'})
	}
	assert.Equal(t, 6, dd.Cursor())
	assert.Equal(t, 2, ctl.Descriptor().Window.Start, "window follows the cursor")

	dd.HandleInput([]byte{27, '[', 'F'}) // End
	assert.Equal(t, 99, dd.Cursor())
	assert.Equal(t, 100, ctl.Descriptor().Window.End)

	dd.HandleInput([]byte{27, '[', '5', '~'}) // Page Up
	assert.Equal(t, 94, dd.Cursor())

	dd.HandleInput([]byte{27, '[', 'H'}) // Home
	assert.Equal(t, 0, dd.Cursor())
	assert.Equal(t, 0, ctl.Descriptor().Window.Start)
}

func TestDropdownComponent_SelectAndClose(t *testing.T) {
	ctl := newTestController(3, dropdown.Settings{})
	dd := NewDropdownComponent("test-dropdown", ctl, &mockRenderer{}, 40)

	dd.HandleInput([]byte{13})
	dd.HandleInput([]byte{27, '[', 'B'})
	dd.HandleInput([]byte{13})

	assert.False(t, ctl.IsOpen())
	assert.Equal(t, "Item 2", ctl.Descriptor().DisplayLabel)

	dd.HandleInput([]byte{13})
	assert.Equal(t, 0, dd.Cursor(), "cursor resets after closing")
	dd.HandleInput([]byte{27})
	assert.False(t, ctl.IsOpen())
}

func TestDropdownComponent_SelectAll(t *testing.T) {
	ctl := newTestController(5, dropdown.Settings{Mode: dropdown.Multiple})
	dd := NewDropdownComponent("test-dropdown", ctl, &mockRenderer{}, 40)

	dd.HandleInput([]byte{13})
	dd.HandleInput([]byte{1})
	assert.Equal(t, 5, ctl.Value().Len())
	assert.True(t, ctl.IsOpen())

	dd.HandleInput([]byte{1})
	assert.True(t, ctl.Value().Empty())
}

func TestDropdownComponent_TextRendererFrame(t *testing.T) {
	ctl := newTestController(50, dropdown.Settings{ItemExtent: 1, Capacity: 4})
	r := core.NewTextRenderer(nil, 30, 0)
	dd := NewDropdownComponent("frame", ctl, r, 30)

	dd.HandleInput([]byte{13})
	require.NoError(t, dd.Render(context.Background()))

	lines := r.Lines()
	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, "┌"+strings.Repeat("─", 28)+"┐", lines[0])
	assert.Contains(t, lines[1], "Select...")
	assert.Contains(t, lines[1], "▲")
	assert.Contains(t, lines[4], "▶ Item 1")
	assert.Contains(t, lines[4], "┃", "thumb at the top of the track")
	assert.Contains(t, lines[7], "Item 4")
	assert.NotContains(t, r.Frame(), "Item 5")
}

func TestDropdownComponent_Unmount(t *testing.T) {
	ctl := newTestController(3, dropdown.Settings{})
	dd := NewDropdownComponent("test-dropdown", ctl, &mockRenderer{}, 40)
	dd.MarkDirty()
	require.NoError(t, dd.Render(context.Background()))
	assert.False(t, dd.NeedsRender())

	dd.Unmount()
	dd.Unmount()
	ctl.ToggleOpen()
	assert.False(t, dd.NeedsRender(), "unmounted component stops tracking state")
}

// textFailRenderer fails every DrawText after the first n
type textFailRenderer struct {
	mockRenderer
	n int
}

func (r *textFailRenderer) DrawText(x, y int, text string) error {
	if r.n == 0 {
		return errors.New("text out of bounds")
	}
	r.n--
	return r.mockRenderer.DrawText(x, y, text)
}

func TestDropdownComponent_DrawTextErrors(t *testing.T) {
	ctl := newTestController(3, dropdown.Settings{Searchable: true})
	ctl.ToggleOpen()

	tests := []struct {
		name string
		n    int
	}{
		{"header label", 0},
		{"header arrow", 1},
		{"menu line", 2},
		{"instructions", 2 + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &textFailRenderer{n: tt.n}
			dd := NewDropdownComponent("test-dropdown", ctl, renderer, 40)
			defer dd.Unmount()

			err := dd.Render(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "text out of bounds")
			assert.False(t, renderer.has("FLUSH"), "nothing is flushed after a failed draw")
		})
	}
}
