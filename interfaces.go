package hxbs

import (
	"context"

	"github.com/a-h/templ"
)

// Hydrater is implemented by widgets to reconstruct server-side data from
// the lean props carried in URLs. Called before any handler, including the
// default render.
//
//	func (c *Collapse) Hydrate(ctx context.Context, props *CollapseProps) error {
//	    props.Body = c.content(ctx, props.ID)
//	    return nil
//	}
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by widgets to produce templ output.
// Called for GET requests and after action handlers that return OK.
//
// Render receives hydrated props and should be pure.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Widget is what Mount accepts: a Hydrater and Renderer that embeds
// *Component[P].
type Widget[P any] interface {
	Hydrater[P]
	Renderer[P]
	Base() *Component[P]
}
