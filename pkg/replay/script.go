// Package replay runs scripted event sequences against a dropdown controller
// and records a text frame after every step, so behaviour can be reviewed as
// a series of diffs.
package replay

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alantheprice/dropdown/pkg/catalog"
	"github.com/alantheprice/dropdown/pkg/dropdown"
)

// Step operations
const (
	OpToggleOpen = "toggle_open"
	OpOutside    = "outside"
	OpQuery      = "query"
	OpScroll     = "scroll"
	OpScrollBy   = "scroll_by"
	OpScrollTo   = "scroll_to"
	OpSelect     = "select"
	OpSelectAll  = "select_all"
	OpDisable    = "disable"
	OpEnable     = "enable"
	OpKey        = "key"
	OpType       = "type"
)

var argOps = map[string]bool{
	OpQuery:    true,
	OpScroll:   true,
	OpScrollBy: true,
	OpScrollTo: true,
	OpSelect:   true,
	OpKey:      true,
	OpType:     true,
}

var bareOps = map[string]bool{
	OpToggleOpen: true,
	OpOutside:    true,
	OpSelectAll:  true,
	OpDisable:    true,
	OpEnable:     true,
}

// Step is one scripted event
type Step struct {
	Op  string    `yaml:"op"`
	Arg yaml.Node `yaml:"arg"`
}

// Script describes a widget and the events to feed it. Options is either a
// builtin catalog name ("fruits", "items:N") or an inline list of
// {key, label} entries.
type Script struct {
	Name        string      `yaml:"name"`
	Options     yaml.Node   `yaml:"options"`
	Mode        string      `yaml:"mode"`
	Searchable  bool        `yaml:"searchable"`
	Placeholder string      `yaml:"placeholder"`
	Capacity    int         `yaml:"capacity"`
	ItemExtent  float64     `yaml:"item_extent"`
	Width       int         `yaml:"width"`
	Value       []yaml.Node `yaml:"value"`
	Steps       []Step      `yaml:"steps"`

	// Strict makes a step that changes nothing an error
	Strict bool `yaml:"strict"`
}

// LoadFile reads a script from path
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", filepath.Base(path), err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// Parse decodes and validates a script
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the widget settings and that every step is well formed
func (s *Script) Validate() error {
	if _, err := s.mode(); err != nil {
		return err
	}
	if s.Capacity < 0 || s.ItemExtent < 0 {
		return fmt.Errorf("capacity and item_extent must not be negative: %w", dropdown.ErrInvalidViewport)
	}
	for i, step := range s.Steps {
		switch {
		case argOps[step.Op]:
			if step.Arg.Kind != yaml.ScalarNode {
				return fmt.Errorf("step %d (%s): needs a scalar arg", i+1, step.Op)
			}
			if step.Op == OpKey {
				if _, ok := keySequences[step.Arg.Value]; !ok {
					return fmt.Errorf("step %d: unknown key %q", i+1, step.Arg.Value)
				}
			}
		case bareOps[step.Op]:
		default:
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
	}
	return nil
}

func (s *Script) mode() (dropdown.Mode, error) {
	if s.Mode == "" {
		return dropdown.Single, nil
	}
	return dropdown.ParseMode(s.Mode)
}

// Settings builds controller settings. Frames are drawn in terminal lines,
// so the item extent defaults to one.
func (s *Script) Settings() dropdown.Settings {
	mode, _ := s.mode()
	extent := s.ItemExtent
	if extent == 0 {
		extent = 1
	}
	return dropdown.Settings{
		Mode:        mode,
		Searchable:  s.Searchable,
		Placeholder: s.Placeholder,
		Capacity:    s.Capacity,
		ItemExtent:  extent,
	}
}

// Catalog resolves the option set
func (s *Script) Catalog() (*dropdown.OptionSet, error) {
	return catalog.Options(&s.Options)
}

// initialValue looks up the keys listed under value
func (s *Script) initialValue(set *dropdown.OptionSet, mode dropdown.Mode) (dropdown.Selection, error) {
	opts := make([]dropdown.Option, 0, len(s.Value))
	for i := range s.Value {
		key, err := catalog.DecodeKey(&s.Value[i])
		if err != nil {
			return dropdown.Selection{}, fmt.Errorf("value %d: %w", i, err)
		}
		opt, ok := set.Lookup(key)
		if !ok {
			return dropdown.Selection{}, fmt.Errorf("value %s: %w", key, dropdown.ErrUnknownKey)
		}
		opts = append(opts, opt)
	}
	if mode == dropdown.Multiple {
		return dropdown.MultipleOf(opts...), nil
	}
	if len(opts) > 0 {
		return dropdown.SingleOf(opts[0]), nil
	}
	return dropdown.EmptySelection(mode), nil
}
