package core

import (
	"context"
	"sync"
)

// BaseComponent provides common component functionality
type BaseComponent struct {
	mu          sync.RWMutex
	id          string
	renderer    Renderer
	needsRender bool

	onUnmount func()
}

// NewBaseComponent creates a new base component
func NewBaseComponent(id string, renderer Renderer) *BaseComponent {
	return &BaseComponent{
		id:          id,
		renderer:    renderer,
		needsRender: true,
	}
}

// GetID returns the component's ID
func (c *BaseComponent) GetID() string {
	return c.id
}

// Renderer returns the renderer the component draws through
func (c *BaseComponent) Renderer() Renderer {
	return c.renderer
}

// MarkDirty flags the component for re-rendering
func (c *BaseComponent) MarkDirty() {
	c.mu.Lock()
	c.needsRender = true
	c.mu.Unlock()
}

// NeedsRender reports whether anything changed since the last render
func (c *BaseComponent) NeedsRender() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.needsRender
}

// Render is the default render implementation. Components that draw call it
// after flushing to mark themselves clean.
func (c *BaseComponent) Render(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.needsRender = false
	c.mu.Unlock()
	return nil
}

// OnUnmount sets the unmount callback
func (c *BaseComponent) OnUnmount(fn func()) {
	c.mu.Lock()
	c.onUnmount = fn
	c.mu.Unlock()
}

// Unmount runs the unmount callback once
func (c *BaseComponent) Unmount() {
	c.mu.Lock()
	fn := c.onUnmount
	c.onUnmount = nil
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
