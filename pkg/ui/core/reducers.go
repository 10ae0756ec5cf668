package core

// AppState is the host-level state of a terminal App
type AppState struct {
	Width   int
	Height  int
	RawMode bool
	Focused string
}

// TerminalReducer manages terminal state
func TerminalReducer(state AppState, action Action) AppState {
	switch action.Type {
	case ActionResize:
		p, ok := action.Payload.(resizePayload)
		if !ok || p.Width <= 0 || p.Height <= 0 {
			return state
		}
		state.Width = p.Width
		state.Height = p.Height
		return state

	case ActionSetRawMode:
		enabled, _ := action.Payload.(bool)
		state.RawMode = enabled
		return state

	default:
		return state
	}
}

// FocusReducer manages which component receives input
func FocusReducer(state AppState, action Action) AppState {
	switch action.Type {
	case ActionFocusComponent:
		id, _ := action.Payload.(string)
		state.Focused = id
		return state

	case ActionBlurComponent:
		state.Focused = ""
		return state

	default:
		return state
	}
}

// RootReducer combines the App reducers
func RootReducer() Reducer[AppState] {
	return CombineReducers(TerminalReducer, FocusReducer)
}
