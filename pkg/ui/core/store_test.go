package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N    int
	Last string
}

func counterReducer(state counter, action Action) counter {
	switch action.Type {
	case "INC":
		state.N++
	case "NAME":
		state.Last, _ = action.Payload.(string)
	}
	return state
}

func TestStoreDispatch(t *testing.T) {
	s := NewStore(counterReducer, counter{})

	assert.True(t, s.Dispatch(Action{Type: "INC"}))
	assert.Equal(t, 1, s.GetState().N)

	assert.False(t, s.Dispatch(Action{Type: "UNKNOWN"}), "unchanged state is not a change")
	assert.True(t, s.Dispatch(Action{Type: "NAME", Payload: "a"}))
	assert.False(t, s.Dispatch(Action{Type: "NAME", Payload: "a"}))
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore(counterReducer, counter{})

	var order []string
	unsubA := s.Subscribe(func(c counter) { order = append(order, "a") })
	s.Subscribe(func(c counter) { order = append(order, "b") })

	s.Dispatch(Action{Type: "INC"})
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	unsubA()
	s.Dispatch(Action{Type: "INC"})
	assert.Equal(t, []string{"a", "b", "b"}, order)

	s.Dispatch(Action{Type: "UNKNOWN"})
	assert.Len(t, order, 3, "no notification without a change")
}

func TestStoreListenerMayDispatch(t *testing.T) {
	s := NewStore(counterReducer, counter{})
	s.Subscribe(func(c counter) {
		if c.N == 1 {
			s.Dispatch(Action{Type: "INC"})
		}
	})
	s.Dispatch(Action{Type: "INC"})
	assert.Equal(t, 2, s.GetState().N)
}

func TestStoreConcurrentDispatch(t *testing.T) {
	s := NewStore(counterReducer, counter{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(Action{Type: "INC"})
			_ = s.GetState()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.GetState().N)
}

func TestCombineReducers(t *testing.T) {
	double := func(state counter, action Action) counter {
		if action.Type == "INC" {
			state.N *= 2
		}
		return state
	}
	r := CombineReducers(counterReducer, double)
	require.Equal(t, 2, r(counter{}, Action{Type: "INC"}).N, "reducers run in order")
	assert.Equal(t, counter{N: 3}, r(counter{N: 3}, Action{Type: "OTHER"}))
}
