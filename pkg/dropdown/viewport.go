package dropdown

import (
	"fmt"
	"math"
)

// Viewport describes the scrollable menu: a fixed extent per row, the
// maximum number of rows materialized at once, and the current scroll offset
// in the same unit as ItemExtent (pixels, terminal lines, ...).
type Viewport struct {
	ItemExtent   float64 `json:"item_extent"`
	Capacity     int     `json:"capacity"`
	ScrollOffset float64 `json:"scroll_offset"`
}

// Validate checks the viewport geometry
func (v Viewport) Validate() error {
	if !(v.ItemExtent > 0) || math.IsInf(v.ItemExtent, 0) {
		return fmt.Errorf("%w: item extent must be positive, got %v", ErrInvalidViewport, v.ItemExtent)
	}
	if v.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidViewport, v.Capacity)
	}
	return nil
}

// Row is one materialized entry of a window
type Row struct {
	Option Option `json:"option"`
	// Index is the row's absolute position in the filtered list
	Index int `json:"index"`
	// Source is the row's position in the OptionSet
	Source int `json:"source"`
	// Offset is Index * ItemExtent, where the host places the row on its track
	Offset   float64 `json:"offset"`
	Selected bool    `json:"selected"`
}

// Window is the contiguous slice [Start, End) of the filtered list that must
// be materialized for the current scroll position.
type Window struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Rows  []Row `json:"rows"`
	// Len is the length of the filtered list the window was cut from
	Len int `json:"len"`
	// TotalExtent sizes the scroll track as if every filtered row existed
	TotalExtent float64 `json:"total_extent"`
}

// TopIndex returns the first visible position for offset, clamped to
// [0, max(0, n-1)]
func TopIndex(offset, itemExtent float64, n int) int {
	if n <= 0 || !(offset > 0) || !(itemExtent > 0) {
		return 0
	}
	top := math.Floor(offset / itemExtent)
	if top >= float64(n-1) {
		return n - 1
	}
	return int(top)
}

// ClampScroll bounds offset so that its top index never passes the last row
func ClampScroll(offset float64, n int, itemExtent float64) float64 {
	if !(offset > 0) {
		return 0
	}
	limit := MaxScroll(n, itemExtent)
	if offset > limit {
		return limit
	}
	return offset
}

// MaxScroll is the largest valid scroll offset for n rows
func MaxScroll(n int, itemExtent float64) float64 {
	if n <= 1 || !(itemExtent > 0) {
		return 0
	}
	return float64(n-1) * itemExtent
}

// ComputeWindow cuts the visible window out of index. It touches at most
// Capacity entries regardless of len(index), and the result depends only on
// its inputs.
func ComputeWindow(set *OptionSet, index FilteredIndex, vp Viewport) Window {
	n := len(index)
	w := Window{Len: n, TotalExtent: float64(n) * vp.ItemExtent}
	if n == 0 || vp.Capacity <= 0 {
		return w
	}

	start := TopIndex(vp.ScrollOffset, vp.ItemExtent, n)
	end := start + vp.Capacity
	if end > n || end < start {
		end = n
	}

	w.Start = start
	w.End = end
	w.Rows = make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		src := index[i]
		w.Rows = append(w.Rows, Row{
			Option: set.At(src),
			Index:  i,
			Source: src,
			Offset: float64(i) * vp.ItemExtent,
		})
	}
	return w
}

// MenuExtent is the height of the visible menu: capacity rows, or less when
// the filtered list is shorter
func MenuExtent(vp Viewport, n int) float64 {
	full := float64(vp.Capacity) * vp.ItemExtent
	total := float64(n) * vp.ItemExtent
	return math.Min(full, total)
}

// Thumb is a scrollbar thumb in track cells
type Thumb struct {
	Pos  int
	Size int
}

// Thumb places a scrollbar thumb on a track of the given length. rows is how
// many rows the host actually shows. Returns a zero Thumb when everything fits.
func (w Window) Thumb(track, rows int) Thumb {
	if track < 1 || rows < 1 || w.Len <= rows {
		return Thumb{}
	}
	size := track * rows / w.Len
	if size < 1 {
		size = 1
	}
	maxScroll := w.Len - rows
	pos := 0
	if maxScroll > 0 {
		start := w.Start
		if start > maxScroll {
			start = maxScroll
		}
		pos = (track - size) * start / maxScroll
	}
	return Thumb{Pos: pos, Size: size}
}
