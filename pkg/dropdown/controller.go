// Package dropdown implements the engine behind a selectable-list widget:
// selection, search filtering and windowed rendering of very large lists.
//
// The engine never draws anything. A host feeds it raw events (toggle, query,
// scroll, click) through a Controller and paints the Descriptor it returns.
// Selection is owned by the host: the controller reports every change through
// Settings.OnChange and renders whatever value the host passes to SetValue.
//
// usage:
//
//	var ctl *dropdown.Controller
//	ctl = dropdown.New(set, dropdown.EmptySelection(dropdown.Multiple), dropdown.Settings{
//	    Mode:       dropdown.Multiple,
//	    Searchable: true,
//	    OnChange:   func(s dropdown.Selection) { ctl.SetValue(s) },
//	})
//	ctl.ToggleOpen()
//	ctl.SetQuery("item 9")
//	d := ctl.Descriptor()
package dropdown

import (
	"sync/atomic"

	"github.com/alantheprice/dropdown/pkg/ui/core"
)

// Defaults used when Settings leaves a field zero
const (
	DefaultItemExtent        = 40
	DefaultCapacity          = 10
	DefaultPlaceholder       = "Select..."
	DefaultSearchPlaceholder = "Search..."
	DefaultEmptyText         = "No options found"
)

// Settings are the widget props fixed at mount time. Disabled can change
// later through SetDisabled.
type Settings struct {
	Mode              Mode
	Searchable        bool
	Disabled          bool
	Placeholder       string
	SearchPlaceholder string
	EmptyText         string
	ItemExtent        float64
	Capacity          int

	// OnChange receives every new selection. The controller keeps no copy.
	OnChange func(Selection)
}

func (s *Settings) setDefaultValues() {
	if !(s.ItemExtent > 0) {
		s.ItemExtent = DefaultItemExtent
	}
	if s.Capacity <= 0 {
		s.Capacity = DefaultCapacity
	}
	if s.Placeholder == "" {
		s.Placeholder = DefaultPlaceholder
	}
	if s.SearchPlaceholder == "" {
		s.SearchPlaceholder = DefaultSearchPlaceholder
	}
	if s.EmptyText == "" {
		s.EmptyText = DefaultEmptyText
	}
}

// Controller coordinates filter, viewport and selection for one widget
// instance. It is not safe for concurrent mutation; hosts process events one
// at a time.
type Controller struct {
	settings  Settings
	set       *OptionSet
	value     Selection
	filter    *Filter
	store     core.Store[State]
	unmounted atomic.Bool
}

// New mounts a controller over set with the host's initial selection
func New(set *OptionSet, initial Selection, settings Settings) *Controller {
	settings.setDefaultValues()
	c := &Controller{
		settings: settings,
		set:      set,
		value:    initial.WithMode(settings.Mode),
		filter:   NewFilter(set),
	}
	c.store = core.NewStore(Reducer(), State{
		Disabled:   settings.Disabled,
		Searchable: settings.Searchable,
	})
	// Registered first so every other subscriber sees the new filter. It
	// lives as long as the store.
	c.store.Subscribe(c.syncFilter)
	return c
}

// syncFilter keeps the memoized filter in step with the query
func (c *Controller) syncFilter(state State) {
	c.filter.Update(state.Query)
}

// Unmount retires the controller. Every later event is ignored and reports
// false; the last state and value stay readable. Safe to call from any
// goroutine.
func (c *Controller) Unmount() {
	c.unmounted.Store(true)
}

// Unmounted reports whether Unmount was called
func (c *Controller) Unmounted() bool {
	return c.unmounted.Load()
}

func (c *Controller) dispatch(action core.Action) bool {
	if c.unmounted.Load() {
		return false
	}
	return c.store.Dispatch(action)
}

// Subscribe registers fn for every state change
func (c *Controller) Subscribe(fn func(State)) func() {
	return c.store.Subscribe(fn)
}

// ToggleOpen opens a closed menu and closes an open one
func (c *Controller) ToggleOpen() bool {
	return c.dispatch(ToggleOpenAction())
}

// OutsideInteraction closes the menu, as a click elsewhere on the page does
func (c *Controller) OutsideInteraction() bool {
	return c.dispatch(CloseAction())
}

// SetQuery replaces the search text and scrolls back to the top. Ignored
// while closed, disabled or when the widget is not searchable.
func (c *Controller) SetQuery(text string) bool {
	return c.dispatch(SetQueryAction(text))
}

// SetScroll moves the viewport to offset. Ignored while closed.
func (c *Controller) SetScroll(offset float64) bool {
	return c.dispatch(SetScrollAction(offset, MaxScroll(c.filter.Len(), c.settings.ItemExtent)))
}

// ScrollBy moves the viewport by delta
func (c *Controller) ScrollBy(delta float64) bool {
	return c.SetScroll(c.store.GetState().Scroll + delta)
}

// ScrollToIndex scrolls the least amount needed to bring the filtered row i
// into the window
func (c *Controller) ScrollToIndex(i int) bool {
	n := c.filter.Len()
	if i < 0 || i >= n {
		return false
	}
	extent := c.settings.ItemExtent
	top := TopIndex(c.store.GetState().Scroll, extent, n)
	switch {
	case i < top:
		return c.SetScroll(float64(i) * extent)
	case i >= top+c.settings.Capacity:
		return c.SetScroll(float64(i-c.settings.Capacity+1) * extent)
	default:
		return false
	}
}

// Select clicks the catalog option with key. Unknown keys are ignored.
func (c *Controller) Select(key Key) bool {
	opt, ok := c.set.Lookup(key)
	if !ok {
		return false
	}
	return c.SelectOption(opt)
}

// SelectOption clicks opt. The new selection goes to OnChange; in single mode
// the menu also closes, even when opt was already selected.
func (c *Controller) SelectOption(opt Option) bool {
	if c.unmounted.Load() || c.store.GetState().Disabled {
		return false
	}
	c.emit(Toggle(c.value, opt))
	if c.settings.Mode == Single {
		c.dispatch(CloseAction())
	}
	return true
}

// SelectAllOrNone selects every catalog option, or clears the selection when
// everything is already selected. Search text has no influence on which
// options are affected. Multiple mode only.
func (c *Controller) SelectAllOrNone() bool {
	if c.settings.Mode != Multiple || c.unmounted.Load() || c.store.GetState().Disabled {
		return false
	}
	c.emit(SelectAllOrNone(c.value, c.set))
	return true
}

func (c *Controller) emit(next Selection) {
	if c.settings.OnChange != nil {
		c.settings.OnChange(next)
	}
}

// SetValue hands the controller the host's current selection
func (c *Controller) SetValue(sel Selection) {
	c.value = sel.WithMode(c.settings.Mode)
}

// SetDisabled updates the disabled prop. Disabling an open menu closes it.
func (c *Controller) SetDisabled(disabled bool) bool {
	return c.dispatch(SetDisabledAction(disabled))
}

// SetOptions replaces the catalog, e.g. when options arrive after mount. The
// current query is re-applied and the scroll offset re-clamped.
func (c *Controller) SetOptions(set *OptionSet) {
	if c.unmounted.Load() {
		return
	}
	c.set = set
	c.filter.SetOptions(set)
	c.dispatch(ClampScrollAction(MaxScroll(c.filter.Len(), c.settings.ItemExtent)))
}

// State returns the current state snapshot
func (c *Controller) State() State {
	return c.store.GetState()
}

// IsOpen reports whether the menu is open
func (c *Controller) IsOpen() bool {
	return c.store.GetState().Open
}

// Value returns the selection last handed over by the host
func (c *Controller) Value() Selection {
	return c.value
}

// Options returns the catalog
func (c *Controller) Options() *OptionSet {
	return c.set
}

// Filtered returns the current filtered index. Callers must not modify it.
func (c *Controller) Filtered() FilteredIndex {
	return c.filter.Index()
}

// Settings returns the effective settings
func (c *Controller) Settings() Settings {
	return c.settings
}

// Viewport returns the current viewport geometry
func (c *Controller) Viewport() Viewport {
	return Viewport{
		ItemExtent:   c.settings.ItemExtent,
		Capacity:     c.settings.Capacity,
		ScrollOffset: c.store.GetState().Scroll,
	}
}
