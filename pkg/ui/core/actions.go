package core

// Common action types
const (
	// Terminal Actions
	ActionResize     = "TERMINAL/RESIZE"
	ActionSetRawMode = "TERMINAL/SET_RAW_MODE"

	// Focus Actions
	ActionFocusComponent = "FOCUS/SET"
	ActionBlurComponent  = "FOCUS/BLUR"
)

type resizePayload struct {
	Width  int
	Height int
}

// ResizeAction records a new terminal size
func ResizeAction(width, height int) Action {
	return Action{
		Type:    ActionResize,
		Payload: resizePayload{Width: width, Height: height},
	}
}

// SetRawModeAction records whether the terminal is in raw mode
func SetRawModeAction(enabled bool) Action {
	return Action{Type: ActionSetRawMode, Payload: enabled}
}

// FocusComponentAction routes input to the component with the given ID
func FocusComponentAction(componentID string) Action {
	return Action{Type: ActionFocusComponent, Payload: componentID}
}

// BlurComponentAction clears focus
func BlurComponentAction() Action {
	return Action{Type: ActionBlurComponent}
}
