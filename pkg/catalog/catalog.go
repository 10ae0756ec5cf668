// Package catalog loads and generates option sets for dropdown hosts
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alantheprice/dropdown/pkg/dropdown"
)

// Generate returns n options labelled "Item 1".."Item n" with keys
// "item-1".."item-n"
func Generate(n int) *dropdown.OptionSet {
	if n < 0 {
		n = 0
	}
	opts := make([]dropdown.Option, n)
	for i := range opts {
		opts[i] = dropdown.NewOption(fmt.Sprintf("item-%d", i+1), fmt.Sprintf("Item %d", i+1))
	}
	return dropdown.MustOptionSet(opts...)
}

// Fruits is a small static catalog
func Fruits() *dropdown.OptionSet {
	return dropdown.MustOptionSet(
		dropdown.NewOption("apple", "Apple"),
		dropdown.NewOption("banana", "Banana"),
		dropdown.NewOption("cherry", "Cherry"),
		dropdown.NewOption("date", "Date"),
		dropdown.NewOption("elderberry", "Elderberry"),
		dropdown.NewOption("fig", "Fig"),
		dropdown.NewOption("grape", "Grape"),
	)
}

// Builtin resolves the names accepted by --options: "fruits" or "items:N"
func Builtin(name string) (*dropdown.OptionSet, bool) {
	switch {
	case name == "fruits":
		return Fruits(), true
	case strings.HasPrefix(name, "items:"):
		n, err := strconv.Atoi(strings.TrimPrefix(name, "items:"))
		if err != nil || n < 0 {
			return nil, false
		}
		return Generate(n), true
	default:
		return nil, false
	}
}

// Resolve returns a builtin catalog for name, or loads it as a file
func Resolve(name string) (*dropdown.OptionSet, error) {
	if set, ok := Builtin(name); ok {
		return set, nil
	}
	return LoadFile(name)
}

// entry is one option as written in a catalog file. Key is decoded by hand so
// that integer keys stay integers.
type entry struct {
	Key   yaml.Node `yaml:"key"`
	Label string    `yaml:"label"`
}

// LoadFile reads a YAML or JSON list of {key, label} objects. JSON is valid
// YAML, so both go through the same decoder.
func LoadFile(path string) (*dropdown.OptionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", filepath.Base(path), err)
	}
	return set, nil
}

// Parse decodes catalog data
func Parse(data []byte) (*dropdown.OptionSet, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	opts := make([]dropdown.Option, 0, len(entries))
	for i, e := range entries {
		key, err := DecodeKey(&e.Key)
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
		label := e.Label
		if label == "" {
			label = key.String()
		}
		opts = append(opts, dropdown.Option{Key: key, Label: label})
	}
	return dropdown.NewOptionSet(opts)
}

// Options decodes a catalog already embedded in another YAML document
func Options(node *yaml.Node) (*dropdown.OptionSet, error) {
	if node == nil || node.Kind == 0 {
		return dropdown.NewOptionSet(nil)
	}
	// Scalars name builtin catalogs
	if node.Kind == yaml.ScalarNode {
		if set, ok := Builtin(node.Value); ok {
			return set, nil
		}
		return nil, fmt.Errorf("unknown catalog %q", node.Value)
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// DecodeKey reads a scalar as an option key: YAML integers become integer
// keys and everything quoted or plain becomes a string key
func DecodeKey(node *yaml.Node) (dropdown.Key, error) {
	if node.Kind != yaml.ScalarNode {
		return dropdown.Key{}, fmt.Errorf("key must be a string or integer")
	}
	switch node.ShortTag() {
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return dropdown.Key{}, fmt.Errorf("invalid integer key %q: %w", node.Value, err)
		}
		return dropdown.IntKey(n), nil
	case "!!str":
		return dropdown.StringKey(node.Value), nil
	default:
		return dropdown.Key{}, fmt.Errorf("key must be a string or integer, got %s", node.ShortTag())
	}
}
