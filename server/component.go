package server

import (
	"context"
	"fmt"

	"github.com/kbukum/gallery/component"
)

const componentName = "http-server"

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// Component wraps Server to implement component.Component.
type Component struct {
	server  *Server
	started bool
}

// NewComponent returns a component.Component backed by the given Server.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name used for registration.
func (sc *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *Component) Start(ctx context.Context) error {
	if err := sc.server.Start(ctx); err != nil {
		return err
	}
	sc.started = true
	return nil
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *Component) Stop(ctx context.Context) error {
	sc.started = false
	return sc.server.Stop(ctx)
}

// Health reports whether the server is accepting connections.
func (sc *Component) Health(_ context.Context) component.Health {
	if !sc.started {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "HTTP server not started"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe returns infrastructure summary info for the startup log.
func (sc *Component) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s routes=%d", sc.server.Addr(), len(sc.server.engine.Routes())),
	}
}
