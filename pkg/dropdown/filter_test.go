package dropdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterIndex(t *testing.T) {
	set := MustOptionSet(
		NewOption("apple", "Apple"),
		NewOption("banana", "Banana"),
		NewOption("cherry", "Cherry"),
		NewOption("grape", "Grape"),
		NewOption("pineapple", "Pineapple"),
		NewOption("strasse", "Straße"),
	)

	tests := []struct {
		name  string
		query string
		want  FilteredIndex
	}{
		{name: "empty query keeps everything", query: "", want: FilteredIndex{0, 1, 2, 3, 4, 5}},
		{name: "case insensitive", query: "APP", want: FilteredIndex{0, 4}},
		{name: "substring in the middle", query: "an", want: FilteredIndex{1}},
		{name: "no match", query: "kiwi", want: FilteredIndex{}},
		{name: "unicode folding", query: "STRASSE", want: FilteredIndex{5}},
		{name: "whitespace is literal", query: " ", want: FilteredIndex{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterIndex(set, tt.query)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterIndexIsOrderedSubsequence(t *testing.T) {
	set := generateItems(2000)
	for _, q := range []string{"1", "item 2", "99", "0"} {
		index := FilterIndex(set, q)
		for i := 1; i < len(index); i++ {
			assert.Less(t, index[i-1], index[i], "query %q", q)
		}
		for _, src := range index {
			assert.GreaterOrEqual(t, src, 0)
			assert.Less(t, src, set.Len())
		}
	}
}

func TestFilterMemoizes(t *testing.T) {
	f := NewFilter(fruits())
	assert.Equal(t, 3, f.Len())
	assert.False(t, f.Active())

	assert.True(t, f.Update("an"))
	first := f.Index()
	assert.False(t, f.Update("an"))
	assert.Equal(t, first, f.Index())
	assert.True(t, f.Active())

	opt, ok := f.Original(0)
	assert.True(t, ok)
	assert.Equal(t, "Banana", opt.Label)
	_, ok = f.Original(1)
	assert.False(t, ok)

	f.Reset()
	assert.Equal(t, "", f.Query())
	assert.Equal(t, FilteredIndex{0, 1, 2}, f.Index())
}

func TestFilterSetOptionsReappliesQuery(t *testing.T) {
	f := NewFilter(fruits())
	f.Update("e")
	assert.Equal(t, FilteredIndex{0, 2}, f.Index())

	f.SetOptions(MustOptionSet(NewOption("kiwi", "Kiwi"), NewOption("melon", "Melon")))
	assert.Equal(t, FilteredIndex{1}, f.Index())
	assert.Equal(t, "e", f.Query())
}
