package dropdown

import (
	"encoding/json"
	"fmt"
)

// Mode selects between single and multiple selection
type Mode int

const (
	// Single holds at most one option
	Single Mode = iota
	// Multiple holds a set of options keyed by Option.Key
	Multiple
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText encodes the mode as "single" or "multiple"
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses "single" or "multiple" ("multi" is accepted too)
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode parses a mode name
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "":
		return Single, nil
	case "multiple", "multi":
		return Multiple, nil
	default:
		return Single, fmt.Errorf("unknown selection mode %q", s)
	}
}

// Selection is an immutable selection value. Every operation that changes a
// selection returns a new one; the receiver is never modified, so a host can
// keep old values around safely.
type Selection struct {
	mode  Mode
	items []Option
	keys  map[Key]struct{}
}

// EmptySelection returns a selection holding nothing
func EmptySelection(mode Mode) Selection {
	return Selection{mode: mode}
}

// SingleOf returns a single-mode selection holding opt
func SingleOf(opt Option) Selection {
	return Selection{mode: Single, items: []Option{opt}}
}

// MultipleOf returns a multiple-mode selection. Repeated keys keep their
// first occurrence.
func MultipleOf(opts ...Option) Selection {
	s := Selection{mode: Multiple, keys: make(map[Key]struct{}, len(opts))}
	for _, opt := range opts {
		if _, dup := s.keys[opt.Key]; dup {
			continue
		}
		s.keys[opt.Key] = struct{}{}
		s.items = append(s.items, opt)
	}
	return s
}

// Mode returns the selection mode
func (s Selection) Mode() Mode { return s.mode }

// Len returns the number of selected options
func (s Selection) Len() int { return len(s.items) }

// Empty reports whether nothing is selected
func (s Selection) Empty() bool { return len(s.items) == 0 }

// Option returns the selected option in single mode, or the first selected
// option in multiple mode
func (s Selection) Option() (Option, bool) {
	if len(s.items) == 0 {
		return Option{}, false
	}
	return s.items[0], true
}

// Options returns the selected options. Multiple-mode selections keep the
// order in which options were added.
func (s Selection) Options() []Option {
	out := make([]Option, len(s.items))
	copy(out, s.items)
	return out
}

// Keys returns the selected keys in the same order as Options
func (s Selection) Keys() []Key {
	out := make([]Key, len(s.items))
	for i, opt := range s.items {
		out[i] = opt.Key
	}
	return out
}

// Contains reports whether key is selected
func (s Selection) Contains(key Key) bool {
	if s.mode == Multiple {
		_, ok := s.keys[key]
		return ok
	}
	return len(s.items) == 1 && s.items[0].Key == key
}

// Equal compares mode and key membership; order is not significant
func (s Selection) Equal(other Selection) bool {
	if s.mode != other.mode || len(s.items) != len(other.items) {
		return false
	}
	for _, opt := range s.items {
		if !other.Contains(opt.Key) {
			return false
		}
	}
	return true
}

// WithMode converts the selection to another mode. Converting a multiple
// selection to single keeps its first option.
func (s Selection) WithMode(mode Mode) Selection {
	if s.mode == mode {
		return s
	}
	if mode == Multiple {
		return MultipleOf(s.items...)
	}
	if opt, ok := s.Option(); ok {
		return SingleOf(opt)
	}
	return EmptySelection(Single)
}

type selectionJSON struct {
	Mode    Mode     `json:"mode"`
	Options []Option `json:"options"`
}

// MarshalJSON encodes the selection as {"mode": ..., "options": [...]}
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(selectionJSON{Mode: s.mode, Options: s.Options()})
}

// UnmarshalJSON decodes the form written by MarshalJSON
func (s *Selection) UnmarshalJSON(data []byte) error {
	var raw selectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Mode == Multiple:
		*s = MultipleOf(raw.Options...)
	case len(raw.Options) > 0:
		*s = SingleOf(raw.Options[0])
	default:
		*s = EmptySelection(Single)
	}
	return nil
}

// IsSelected reports whether opt is part of sel
func IsSelected(sel Selection, opt Option) bool {
	return sel.Contains(opt.Key)
}

// Toggle applies a click on opt. In single mode the option always replaces
// the current value, including when it is already selected. In multiple mode
// the option is removed when present and added otherwise.
func Toggle(sel Selection, opt Option) Selection {
	if sel.mode != Multiple {
		return SingleOf(opt)
	}

	if _, present := sel.keys[opt.Key]; present {
		next := Selection{
			mode:  Multiple,
			items: make([]Option, 0, len(sel.items)-1),
			keys:  make(map[Key]struct{}, len(sel.items)-1),
		}
		for _, item := range sel.items {
			if item.Key == opt.Key {
				continue
			}
			next.items = append(next.items, item)
			next.keys[item.Key] = struct{}{}
		}
		return next
	}

	next := Selection{
		mode:  Multiple,
		items: make([]Option, len(sel.items), len(sel.items)+1),
		keys:  make(map[Key]struct{}, len(sel.items)+1),
	}
	copy(next.items, sel.items)
	for _, item := range sel.items {
		next.keys[item.Key] = struct{}{}
	}
	next.items = append(next.items, opt)
	next.keys[opt.Key] = struct{}{}
	return next
}

// SelectAllOrNone clears a multiple selection that already covers every key
// of full, and otherwise selects exactly the options of full. full is the
// whole catalog, never a filtered subset. Single-mode selections are returned
// unchanged.
func SelectAllOrNone(sel Selection, full *OptionSet) Selection {
	if sel.mode != Multiple {
		return sel
	}
	if coversExactly(sel, full) {
		return EmptySelection(Multiple)
	}
	return MultipleOf(full.Options()...)
}

// SelectAllLabel is the text of the select-all row for sel
func SelectAllLabel(sel Selection, full *OptionSet) string {
	if sel.mode == Multiple && coversExactly(sel, full) {
		return "Deselect All"
	}
	return "Select All"
}

// coversExactly reports whether sel's key set equals the keys of full
func coversExactly(sel Selection, full *OptionSet) bool {
	if sel.Len() != full.Len() {
		return false
	}
	for i := 0; i < full.Len(); i++ {
		if !sel.Contains(full.At(i).Key) {
			return false
		}
	}
	return true
}

// DisplayLabel is the header text for sel
func DisplayLabel(sel Selection, placeholder string) string {
	switch sel.Len() {
	case 0:
		return placeholder
	case 1:
		if sel.mode == Single && sel.items[0].Label == "" {
			return placeholder
		}
		return sel.items[0].Label
	default:
		return fmt.Sprintf("%d items selected", sel.Len())
	}
}
