package core

import (
	"sort"
	"sync"
)

// store implements the Store interface
type store[S comparable] struct {
	mu        sync.RWMutex
	state     S
	reducer   Reducer[S]
	listeners map[int]func(S)
	nextID    int
}

// NewStore creates a new store with the given reducer and initial state
func NewStore[S comparable](reducer Reducer[S], initialState S) Store[S] {
	return &store[S]{
		state:     initialState,
		reducer:   reducer,
		listeners: make(map[int]func(S)),
	}
}

// GetState returns the current state
func (s *store[S]) GetState() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch sends an action to update state
func (s *store[S]) Dispatch(action Action) bool {
	s.mu.Lock()
	oldState := s.state
	newState := s.reducer(oldState, action)

	// Only update if state actually changed
	if oldState == newState {
		s.mu.Unlock()
		return false
	}

	s.state = newState
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]func(S), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	// Notify listeners outside of lock, in subscription order
	for _, listener := range listeners {
		listener(newState)
	}
	return true
}

// Subscribe registers a listener for state changes
func (s *store[S]) Subscribe(listener func(S)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

// CombineReducers chains reducers into one. Each reducer sees the state
// produced by the previous one, so reducers handling disjoint actions compose
// without knowing about each other.
func CombineReducers[S any](reducers ...Reducer[S]) Reducer[S] {
	return func(state S, action Action) S {
		for _, reducer := range reducers {
			state = reducer(state, action)
		}
		return state
	}
}
