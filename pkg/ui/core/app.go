package core

import (
	"context"
	"fmt"
)

// InputHandler is implemented by components that accept raw terminal input
type InputHandler interface {
	HandleInput(input []byte) error
}

// App manages mounted components, their renderer and input routing
type App struct {
	store         Store[AppState]
	rootComponent Component
	renderer      Renderer
	components    map[string]Component
}

// NewApp creates a new application
func NewApp(renderer Renderer) *App {
	return &App{
		store:      NewStore(RootReducer(), AppState{Width: 80, Height: 24}),
		renderer:   renderer,
		components: make(map[string]Component),
	}
}

// GetStore returns the app's store
func (a *App) GetStore() Store[AppState] {
	return a.store
}

// Mount mounts a component to the app. The first component becomes the root
// and takes focus.
func (a *App) Mount(component Component) {
	a.components[component.GetID()] = component

	if a.rootComponent == nil {
		a.rootComponent = component
		a.store.Dispatch(FocusComponentAction(component.GetID()))
	}
}

// Unmount unmounts a component from the app
func (a *App) Unmount(componentID string) {
	component, exists := a.components[componentID]
	if !exists {
		return
	}
	if unmountable, ok := component.(interface{ Unmount() }); ok {
		unmountable.Unmount()
	}
	delete(a.components, componentID)

	if a.rootComponent != nil && a.rootComponent.GetID() == componentID {
		a.rootComponent = nil
	}
	if a.store.GetState().Focused == componentID {
		a.store.Dispatch(BlurComponentAction())
	}
}

// Render renders the root component
func (a *App) Render(ctx context.Context) error {
	if a.rootComponent == nil {
		return fmt.Errorf("no root component mounted")
	}
	if a.renderer == nil {
		return fmt.Errorf("no renderer set")
	}
	return a.rootComponent.Render(ctx)
}

// HandleInput routes input to the focused component, falling back to the root
func (a *App) HandleInput(input []byte) error {
	if focused := a.store.GetState().Focused; focused != "" {
		if handler, ok := a.components[focused].(InputHandler); ok {
			return handler.HandleInput(input)
		}
	}
	if handler, ok := a.rootComponent.(InputHandler); ok {
		return handler.HandleInput(input)
	}
	return nil
}

// Resize records a terminal size change
func (a *App) Resize(width, height int) {
	a.store.Dispatch(ResizeAction(width, height))
}

// Size returns the last known terminal size
func (a *App) Size() (width, height int) {
	s := a.store.GetState()
	return s.Width, s.Height
}

// Focus routes input to the component with the given ID
func (a *App) Focus(componentID string) {
	a.store.Dispatch(FocusComponentAction(componentID))
}

// SetRawMode records whether the host put the terminal into raw mode
func (a *App) SetRawMode(enabled bool) {
	a.store.Dispatch(SetRawModeAction(enabled))
}
