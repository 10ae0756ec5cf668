package dropdown

import (
	"github.com/alantheprice/dropdown/pkg/ui/core"
)

// State is the part of a dropdown the controller owns. Selection is not here:
// it belongs to the host.
type State struct {
	Open       bool    `json:"open"`
	Disabled   bool    `json:"disabled"`
	Searchable bool    `json:"searchable"`
	Query      string  `json:"query"`
	Scroll     float64 `json:"scroll"`
}

// Action types
const (
	ActionToggleOpen  = "DROPDOWN/TOGGLE_OPEN"
	ActionClose       = "DROPDOWN/CLOSE"
	ActionSetQuery    = "DROPDOWN/SET_QUERY"
	ActionSetScroll   = "DROPDOWN/SET_SCROLL"
	ActionClampScroll = "DROPDOWN/CLAMP_SCROLL"
	ActionSetDisabled = "DROPDOWN/SET_DISABLED"
)

// scrollPayload carries the requested offset and the largest valid offset
// for the filtered list at dispatch time
type scrollPayload struct {
	Offset float64
	Max    float64
}

// Action creators

// ToggleOpenAction flips between open and closed
func ToggleOpenAction() core.Action {
	return core.Action{Type: ActionToggleOpen}
}

// CloseAction closes the menu; used for outside interactions and commits
func CloseAction() core.Action {
	return core.Action{Type: ActionClose}
}

// SetQueryAction replaces the search text
func SetQueryAction(text string) core.Action {
	return core.Action{Type: ActionSetQuery, Payload: text}
}

// SetScrollAction moves the viewport, bounded by max
func SetScrollAction(offset, max float64) core.Action {
	return core.Action{Type: ActionSetScroll, Payload: scrollPayload{Offset: offset, Max: max}}
}

// ClampScrollAction re-applies the scroll bound after the filtered list shrank
func ClampScrollAction(max float64) core.Action {
	return core.Action{Type: ActionClampScroll, Payload: scrollPayload{Max: max}}
}

// SetDisabledAction updates the disabled prop
func SetDisabledAction(disabled bool) core.Action {
	return core.Action{Type: ActionSetDisabled, Payload: disabled}
}

// Reducer returns the dropdown state machine
func Reducer() core.Reducer[State] {
	return core.CombineReducers(VisibilityReducer, QueryReducer, ScrollReducer)
}

// VisibilityReducer handles open/closed transitions. Any path from open to
// closed resets the query and the scroll offset.
func VisibilityReducer(state State, action core.Action) State {
	switch action.Type {
	case ActionToggleOpen:
		if state.Disabled {
			return state
		}
		if state.Open {
			return closed(state)
		}
		state.Open = true
		return state

	case ActionClose:
		if !state.Open {
			return state
		}
		return closed(state)

	case ActionSetDisabled:
		disabled, _ := action.Payload.(bool)
		state.Disabled = disabled
		if disabled && state.Open {
			return closed(state)
		}
		return state

	default:
		return state
	}
}

// QueryReducer handles search text. A query change always scrolls back to
// the top because the index space changed.
func QueryReducer(state State, action core.Action) State {
	switch action.Type {
	case ActionSetQuery:
		if !state.Open || state.Disabled || !state.Searchable {
			return state
		}
		text, _ := action.Payload.(string)
		state.Query = text
		state.Scroll = 0
		return state

	default:
		return state
	}
}

// ScrollReducer handles viewport movement
func ScrollReducer(state State, action core.Action) State {
	switch action.Type {
	case ActionSetScroll:
		if !state.Open || state.Disabled {
			return state
		}
		p, _ := action.Payload.(scrollPayload)
		state.Scroll = clampTo(p.Offset, p.Max)
		return state

	case ActionClampScroll:
		p, _ := action.Payload.(scrollPayload)
		state.Scroll = clampTo(state.Scroll, p.Max)
		return state

	default:
		return state
	}
}

func closed(state State) State {
	state.Open = false
	state.Query = ""
	state.Scroll = 0
	return state
}

func clampTo(offset, max float64) float64 {
	if !(offset > 0) {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
