package dropdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
)

// Key identifies an Option within an OptionSet. A key is either a string or
// an integer; StringKey("1") and IntKey(1) are different keys.
type Key struct {
	str     string
	num     int64
	numeric bool
}

// StringKey returns a string key
func StringKey(s string) Key { return Key{str: s} }

// IntKey returns an integer key
func IntKey(n int64) Key { return Key{num: n, numeric: true} }

// IsNumeric reports whether the key was built from an integer
func (k Key) IsNumeric() bool { return k.numeric }

// Int returns the integer value of a numeric key
func (k Key) Int() (int64, bool) { return k.num, k.numeric }

func (k Key) String() string {
	if k.numeric {
		return strconv.FormatInt(k.num, 10)
	}
	return k.str
}

// MarshalJSON encodes the key as a JSON string or number
func (k Key) MarshalJSON() ([]byte, error) {
	if k.numeric {
		return strconv.AppendInt(nil, k.num, 10), nil
	}
	return json.Marshal(k.str)
}

// UnmarshalJSON accepts a JSON string or an integral JSON number
func (k *Key) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = StringKey(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("option key must be a string or integer, got %s", data)
	}
	*k = IntKey(n)
	return nil
}

// Option is one selectable item. Options are compared by key only.
type Option struct {
	Key   Key    `json:"key"`
	Label string `json:"label"`
}

// NewOption builds an option with a string key
func NewOption(key, label string) Option {
	return Option{Key: StringKey(key), Label: label}
}

// Equal reports whether two options share a key
func (o Option) Equal(other Option) bool {
	return o.Key == other.Key
}

// OptionSet is the immutable, ordered catalog of options for a widget. Its
// order is both the display order and the index space used for windowing.
// An OptionSet is read-only after construction and may be shared between
// controllers.
type OptionSet struct {
	options []Option
	folded  []string
	index   map[Key]int
}

// NewOptionSet validates and freezes a catalog. Duplicate keys are a data
// contract violation and fail construction.
func NewOptionSet(options []Option) (*OptionSet, error) {
	set := &OptionSet{
		options: make([]Option, len(options)),
		folded:  make([]string, len(options)),
		index:   make(map[Key]int, len(options)),
	}
	fold := cases.Fold()
	for i, opt := range options {
		if prev, dup := set.index[opt.Key]; dup {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateKey, opt.Key.String(), prev, i)
		}
		set.index[opt.Key] = i
		set.options[i] = opt
		set.folded[i] = fold.String(opt.Label)
	}
	return set, nil
}

// MustOptionSet is NewOptionSet for static catalogs; it panics on invalid input.
func MustOptionSet(options ...Option) *OptionSet {
	set, err := NewOptionSet(options)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of options. A nil set is empty.
func (s *OptionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.options)
}

// At returns the option at position i
func (s *OptionSet) At(i int) Option {
	return s.options[i]
}

// IndexOf returns the position of key, or -1
func (s *OptionSet) IndexOf(key Key) int {
	if s == nil {
		return -1
	}
	if i, ok := s.index[key]; ok {
		return i
	}
	return -1
}

// Lookup returns the option with the given key
func (s *OptionSet) Lookup(key Key) (Option, bool) {
	i := s.IndexOf(key)
	if i < 0 {
		return Option{}, false
	}
	return s.options[i], true
}

// Options returns a copy of the catalog in order
func (s *OptionSet) Options() []Option {
	if s == nil {
		return nil
	}
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}
