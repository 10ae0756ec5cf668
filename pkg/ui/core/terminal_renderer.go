package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextRenderer implements the Renderer interface over an in-memory cell grid.
// Flush composes the queued operations into a frame and writes it out.
type TextRenderer struct {
	out    io.Writer
	buffer []renderOp
	width  int
	height int
	lines  []string
}

// renderOp represents a rendering operation
type renderOp struct {
	opType string
	x, y   int
	text   string
	width  int
	height int
}

// NewTextRenderer creates a renderer that draws into a width-wide frame.
// A zero height grows the frame to fit whatever is drawn. out may be nil when
// only Lines or Frame are needed.
func NewTextRenderer(out io.Writer, width, height int) *TextRenderer {
	if width <= 0 {
		width = 80
	}
	return &TextRenderer{
		out:    out,
		buffer: make([]renderOp, 0),
		width:  width,
		height: height,
	}
}

// Clear clears the render buffer
func (r *TextRenderer) Clear() error {
	r.buffer = r.buffer[:0]
	return nil
}

// DrawText draws text at a specific position
func (r *TextRenderer) DrawText(x, y int, text string) error {
	r.buffer = append(r.buffer, renderOp{
		opType: "text",
		x:      x,
		y:      y,
		text:   text,
	})
	return nil
}

// DrawBox draws a box
func (r *TextRenderer) DrawBox(x, y, width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("box %dx%d is too small", width, height)
	}
	r.buffer = append(r.buffer, renderOp{
		opType: "box",
		x:      x,
		y:      y,
		width:  width,
		height: height,
	})
	return nil
}

// Flush commits all pending draws
func (r *TextRenderer) Flush() error {
	grid := newCellGrid(r.width, r.frameHeight())

	for _, op := range r.buffer {
		switch op.opType {
		case "text":
			grid.put(op.x, op.y, op.text)

		case "box":
			inner := op.width - 2
			grid.put(op.x, op.y, "┌"+strings.Repeat("─", inner)+"┐")
			for i := 1; i < op.height-1; i++ {
				grid.put(op.x, op.y+i, "│"+strings.Repeat(" ", inner)+"│")
			}
			grid.put(op.x, op.y+op.height-1, "└"+strings.Repeat("─", inner)+"┘")
		}
	}

	r.lines = grid.lines()
	r.buffer = r.buffer[:0]

	if r.out == nil {
		return nil
	}
	for _, line := range r.lines {
		if _, err := io.WriteString(r.out, line+"\n"); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	}
	return nil
}

// Lines returns the rows of the last flushed frame with trailing spaces removed
func (r *TextRenderer) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Frame returns the last flushed frame as one string
func (r *TextRenderer) Frame() string {
	return strings.Join(r.lines, "\n")
}

// GetSize returns the frame size; height is 0 for auto-sized frames
func (r *TextRenderer) GetSize() (width, height int) {
	return r.width, r.height
}

func (r *TextRenderer) frameHeight() int {
	if r.height > 0 {
		return r.height
	}
	h := 0
	for _, op := range r.buffer {
		bottom := op.y + 1
		if op.opType == "box" {
			bottom = op.y + op.height
		}
		if bottom > h {
			h = bottom
		}
	}
	return h
}

// TruncateString shortens s to at most maxWidth terminal cells, ending with
// an ellipsis when there is room for one
func TruncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// cellGrid holds one string per terminal cell. Wide runes occupy their cell
// and leave an empty continuation cell behind them.
type cellGrid struct {
	width int
	rows  [][]string
}

func newCellGrid(width, height int) *cellGrid {
	g := &cellGrid{width: width, rows: make([][]string, height)}
	for i := range g.rows {
		g.rows[i] = blankRow(width)
	}
	return g
}

func blankRow(width int) []string {
	row := make([]string, width)
	for i := range row {
		row[i] = " "
	}
	return row
}

func (g *cellGrid) put(x, y int, text string) {
	if y < 0 || y >= len(g.rows) {
		return
	}
	row := g.rows[y]
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > g.width {
			return
		}
		if col >= 0 {
			row[col] = string(ch)
			for i := 1; i < w; i++ {
				row[col+i] = ""
			}
		}
		col += w
	}
}

func (g *cellGrid) lines() []string {
	out := make([]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = strings.TrimRight(strings.Join(row, ""), " ")
	}
	return out
}
