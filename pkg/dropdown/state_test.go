package dropdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReducer(t *testing.T) {
	reduce := Reducer()
	open := State{Open: true, Searchable: true}

	tests := []struct {
		name  string
		state State
		want  State
	}{
		{
			name:  "toggle opens",
			state: State{Searchable: true},
			want:  open,
		},
		{
			name:  "toggle closes and resets",
			state: State{Open: true, Searchable: true, Query: "ap", Scroll: 80},
			want:  State{Searchable: true},
		},
		{
			name:  "toggle ignored while disabled",
			state: State{Disabled: true},
			want:  State{Disabled: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reduce(tt.state, ToggleOpenAction()))
		})
	}
}

func TestReducerCloseResets(t *testing.T) {
	reduce := Reducer()
	state := State{Open: true, Searchable: true, Query: "item", Scroll: 400}

	got := reduce(state, CloseAction())
	assert.Equal(t, State{Searchable: true}, got)

	// closing a closed menu changes nothing
	assert.Equal(t, got, reduce(got, CloseAction()))
}

func TestReducerQuery(t *testing.T) {
	reduce := Reducer()

	open := State{Open: true, Searchable: true, Scroll: 200}
	got := reduce(open, SetQueryAction("ban"))
	assert.Equal(t, "ban", got.Query)
	assert.Equal(t, 0.0, got.Scroll)

	// the same query still scrolls back to the top
	scrolled := got
	scrolled.Scroll = 120
	assert.Equal(t, 0.0, reduce(scrolled, SetQueryAction("ban")).Scroll)

	closed := State{Searchable: true}
	assert.Equal(t, closed, reduce(closed, SetQueryAction("ban")))

	notSearchable := State{Open: true}
	assert.Equal(t, notSearchable, reduce(notSearchable, SetQueryAction("ban")))
}

func TestReducerScroll(t *testing.T) {
	reduce := Reducer()
	open := State{Open: true}

	assert.Equal(t, 400.0, reduce(open, SetScrollAction(400, 1000)).Scroll)
	assert.Equal(t, 1000.0, reduce(open, SetScrollAction(5000, 1000)).Scroll)
	assert.Equal(t, 0.0, reduce(open, SetScrollAction(-10, 1000)).Scroll)

	assert.Equal(t, State{}, reduce(State{}, SetScrollAction(400, 1000)), "closed menu ignores scroll")

	clamped := reduce(State{Open: true, Scroll: 800}, ClampScrollAction(120))
	assert.Equal(t, 120.0, clamped.Scroll)
}

func TestReducerSetScrollIsIdempotent(t *testing.T) {
	reduce := Reducer()
	once := reduce(State{Open: true}, SetScrollAction(333, 1000))
	twice := reduce(once, SetScrollAction(333, 1000))
	assert.Equal(t, once, twice)
}

func TestReducerDisable(t *testing.T) {
	reduce := Reducer()

	got := reduce(State{Open: true, Query: "x", Scroll: 40}, SetDisabledAction(true))
	assert.Equal(t, State{Disabled: true}, got)

	got = reduce(got, SetDisabledAction(false))
	assert.Equal(t, State{}, got)
}
