package dropdown

// Descriptor is everything a host needs to paint the widget
type Descriptor struct {
	Open         bool   `json:"open"`
	Disabled     bool   `json:"disabled"`
	Mode         Mode   `json:"mode"`
	Searchable   bool   `json:"searchable"`
	DisplayLabel string `json:"display_label"`
	Placeholder  string `json:"placeholder"`

	SearchPlaceholder string `json:"search_placeholder,omitempty"`
	Query             string `json:"query"`

	Window      Window  `json:"window"`
	TotalExtent float64 `json:"total_extent"`
	MenuExtent  float64 `json:"menu_extent"`
	ItemExtent  float64 `json:"item_extent"`
	Capacity    int     `json:"capacity"`

	Selection Selection `json:"selection"`

	// SelectAllLabel is set in multiple mode only
	SelectAllLabel string `json:"select_all_label,omitempty"`

	// Empty is true when no option matches the query
	Empty     bool   `json:"empty"`
	EmptyText string `json:"empty_text"`
}

// Descriptor builds the render descriptor for the current state
func (c *Controller) Descriptor() Descriptor {
	state := c.store.GetState()
	vp := c.Viewport()
	index := c.filter.Index()

	w := ComputeWindow(c.set, index, vp)
	for i := range w.Rows {
		w.Rows[i].Selected = c.value.Contains(w.Rows[i].Option.Key)
	}

	d := Descriptor{
		Open:         state.Open && !state.Disabled,
		Disabled:     state.Disabled,
		Mode:         c.settings.Mode,
		Searchable:   c.settings.Searchable,
		DisplayLabel: DisplayLabel(c.value, c.settings.Placeholder),
		Placeholder:  c.settings.Placeholder,
		Query:        state.Query,
		Window:       w,
		TotalExtent:  w.TotalExtent,
		MenuExtent:   MenuExtent(vp, len(index)),
		ItemExtent:   vp.ItemExtent,
		Capacity:     vp.Capacity,
		Selection:    c.value,
		Empty:        len(index) == 0,
		EmptyText:    c.settings.EmptyText,
	}
	if c.settings.Searchable {
		d.SearchPlaceholder = c.settings.SearchPlaceholder
	}
	if c.settings.Mode == Multiple {
		d.SelectAllLabel = SelectAllLabel(c.value, c.set)
	}
	return d
}
