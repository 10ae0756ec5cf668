// Package core provides the state container and drawing contracts shared by dropdown hosts
package core

import (
	"context"
)

// Action represents a state change request
type Action struct {
	Type    string
	Payload interface{}
}

// Reducer transforms state based on actions. Reducers must be pure: the same
// state and action always produce the same result.
type Reducer[S any] func(state S, action Action) S

// Store manages one piece of state
type Store[S comparable] interface {
	// GetState returns the current state
	GetState() S

	// Dispatch sends an action through the reducer and reports whether the
	// state changed
	Dispatch(action Action) bool

	// Subscribe registers a listener for state changes
	Subscribe(listener func(state S)) func()
}

// Component is anything that can draw itself through a Renderer
type Component interface {
	// Render produces the component's output
	Render(ctx context.Context) error

	// GetID returns the component's unique identifier
	GetID() string
}

// Renderer handles the actual drawing
type Renderer interface {
	// Clear clears the render area
	Clear() error

	// DrawText draws text at a specific position
	DrawText(x, y int, text string) error

	// DrawBox draws a box
	DrawBox(x, y, width, height int) error

	// Flush commits all pending draws
	Flush() error
}
