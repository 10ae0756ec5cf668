package dropdown

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilteredIndex is an ordered list of positions into an OptionSet. It is
// always a subsequence of the catalog in original order.
type FilteredIndex []int

// FilterIndex returns the positions of every option whose label contains
// query, ignoring case. An empty query matches everything. Matching is plain
// substring containment; results keep catalog order.
func FilterIndex(set *OptionSet, query string) FilteredIndex {
	n := set.Len()
	if query == "" {
		return identityIndex(n)
	}

	needle := cases.Fold().String(query)
	out := make(FilteredIndex, 0)
	for i := 0; i < n; i++ {
		if strings.Contains(set.folded[i], needle) {
			out = append(out, i)
		}
	}
	return out
}

func identityIndex(n int) FilteredIndex {
	out := make(FilteredIndex, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Filter memoizes FilterIndex for one catalog. Update recomputes only when
// the query actually changes; SetOptions always recomputes.
type Filter struct {
	set   *OptionSet
	query string
	index FilteredIndex
}

// NewFilter creates an unfiltered view of set
func NewFilter(set *OptionSet) *Filter {
	f := &Filter{set: set}
	f.Reset()
	return f
}

// Update re-filters with a new query. Returns false if the query is unchanged.
func (f *Filter) Update(query string) bool {
	if query == f.query {
		return false
	}
	f.query = query
	f.index = FilterIndex(f.set, query)
	return true
}

// SetOptions swaps the catalog and re-applies the current query
func (f *Filter) SetOptions(set *OptionSet) {
	f.set = set
	f.index = FilterIndex(set, f.query)
}

// Reset clears the query, restoring every option in original order
func (f *Filter) Reset() {
	f.query = ""
	f.index = identityIndex(f.set.Len())
}

// Index returns the current filtered index. Callers must not modify it.
func (f *Filter) Index() FilteredIndex {
	return f.index
}

// Len returns the number of matching options
func (f *Filter) Len() int {
	return len(f.index)
}

// Query returns the query the index was computed for
func (f *Filter) Query() string {
	return f.query
}

// Active reports whether a query is applied
func (f *Filter) Active() bool {
	return f.query != ""
}

// Original maps a filtered position back to its option
func (f *Filter) Original(filtered int) (Option, bool) {
	if filtered < 0 || filtered >= len(f.index) {
		return Option{}, false
	}
	return f.set.At(f.index[filtered]), true
}
