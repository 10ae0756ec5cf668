package replay

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alantheprice/dropdown/pkg/catalog"
	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/ui/core"
	"github.com/alantheprice/dropdown/pkg/ui/core/components"
	"github.com/alantheprice/dropdown/pkg/utils"
)

// DefaultWidth is the frame width when the script sets none
const DefaultWidth = 40

// keySequences maps key names to the bytes a terminal sends for them
var keySequences = map[string][]byte{
	"enter":     {13},
	"space":     {' '},
	"esc":       {27},
	"backspace": {127},
	"ctrl+a":    {1},
	"up":        {27, '[', 'A'},
	"down":      {27, '[', 'B'},
	"pgup":      {27, '[', '5', '~'},
	"pgdown":    {27, '[', '6', '~'},
	"home":      {27, '[', 'H'},
	"end":       {27, '[', 'F'},
}

// Frame is the widget as drawn after one step. Step 0 is the mounted widget
// before any event.
type Frame struct {
	Step    int
	Op      string
	Arg     string
	Applied bool
	Text    string
	Value   dropdown.Selection
}

// Result is a finished replay
type Result struct {
	Name   string
	Frames []Frame
}

// Final returns the last frame
func (r *Result) Final() Frame {
	return r.Frames[len(r.Frames)-1]
}

// Run replays s. Steps run in order and the context is checked between
// them.
func Run(ctx context.Context, s *Script, logger *utils.Logger) (*Result, error) {
	set, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	settings := s.Settings()
	initial, err := s.initialValue(set, settings.Mode)
	if err != nil {
		return nil, err
	}

	value := initial
	var ctl *dropdown.Controller
	settings.OnChange = func(next dropdown.Selection) {
		value = next
		ctl.SetValue(next)
	}
	ctl = dropdown.New(set, initial, settings)
	defer ctl.Unmount()

	width := s.Width
	if width <= 0 {
		width = DefaultWidth
	}
	renderer := core.NewTextRenderer(nil, width, 0)
	comp := components.NewDropdownComponent("replay", ctl, renderer, width)
	defer comp.Unmount()

	draw := func() (string, error) {
		if err := comp.Render(ctx); err != nil {
			return "", err
		}
		return renderer.Frame(), nil
	}

	text, err := draw()
	if err != nil {
		return nil, err
	}
	res := &Result{Name: s.Name, Frames: []Frame{{Op: "mount", Applied: true, Text: text, Value: value}}}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		prev := res.Final()
		applied, err := apply(ctl, comp, step)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}

		text, err := draw()
		if err != nil {
			return res, err
		}
		if step.Op == OpKey || step.Op == OpType {
			applied = text != prev.Text || !value.Equal(prev.Value)
		}
		if logger != nil {
			logger.LogEvent("replay", step.Op+" "+step.Arg.Value, applied)
		}
		if !applied && s.Strict {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Op, dropdown.ErrInvalidTransition)
		}

		res.Frames = append(res.Frames, Frame{
			Step:    i + 1,
			Op:      step.Op,
			Arg:     step.Arg.Value,
			Applied: applied,
			Text:    text,
			Value:   value,
		})
	}
	return res, nil
}

func apply(ctl *dropdown.Controller, comp *components.DropdownComponent, step Step) (bool, error) {
	arg := step.Arg.Value
	switch step.Op {
	case OpToggleOpen:
		return ctl.ToggleOpen(), nil
	case OpOutside:
		return ctl.OutsideInteraction(), nil
	case OpSelectAll:
		return ctl.SelectAllOrNone(), nil
	case OpDisable:
		return ctl.SetDisabled(true), nil
	case OpEnable:
		return ctl.SetDisabled(false), nil
	case OpQuery:
		return ctl.SetQuery(arg), nil

	case OpScroll, OpScrollBy:
		offset, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return false, fmt.Errorf("invalid offset %q", arg)
		}
		if step.Op == OpScrollBy {
			return ctl.ScrollBy(offset), nil
		}
		return ctl.SetScroll(offset), nil

	case OpScrollTo:
		index, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("invalid index %q", arg)
		}
		return ctl.ScrollToIndex(index), nil

	case OpSelect:
		key, err := catalog.DecodeKey(&step.Arg)
		if err != nil {
			return false, err
		}
		if _, ok := ctl.Options().Lookup(key); !ok {
			return false, fmt.Errorf("select %s: %w", key, dropdown.ErrUnknownKey)
		}
		return ctl.Select(key), nil

	case OpKey:
		return true, comp.HandleInput(keySequences[arg])
	case OpType:
		return true, comp.HandleInput([]byte(arg))
	}
	return false, fmt.Errorf("unknown op %q", step.Op)
}
