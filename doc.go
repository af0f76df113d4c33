// Package hxbs provides server-rendered Bootstrap widgets for HTMX: a
// collapse panel state machine, navs whose items follow the current page,
// and buttons that track the state of their click action.
//
// # Collapse panels
//
// A Panel animates an Element between a collapsed and an expanded size.
// It does not touch the DOM itself. The host supplies the element, which
// reports metrics and accepts inline styles, and a Scheduler, which runs
// callbacks on the next tick and at the end of a transition:
//
//	p, err := hxbs.NewPanel(el, loop, hxbs.WithCollapsed(true))
//	p.Show()
//
// Showing pins the element at its collapsed size, sets the expanded size
// on the next tick, and clears the inline size when the transition ends.
// Hiding runs the same steps in reverse. A flip mid-transition starts the
// new transition at once; callbacks of the superseded one are ignored.
//
// Hosts in this module:
//   - Box with ManualScheduler: server rendering, one step per request
//   - Box with EventLoop: a goroutine-owned loop with real timers
//   - tui.Box with tui.Scheduler: a Bubble Tea terminal
//
// # Widgets
//
// Widgets embed *Component[P] where P is the Props type. Props must be
// serializable and should contain only IDs or minimal data; rich objects
// are reconstructed during hydration.
//
//	type Collapse struct {
//	    *hxbs.Component[CollapseProps]
//	    content ContentFunc
//	}
//
// The lifecycle is formalized through two interfaces:
//   - Hydrater[P]: Hydrate(ctx, *P) reconstructs rich objects from IDs
//   - Renderer[P]: Render(ctx, P) produces the templ.Component output
//
// Hydrate runs before any handler. Render runs after a successful action.
//
// # Actions and Routing
//
// Actions are registered with semantic names:
//
//	c.Action("toggle", c.handleToggle)
//	c.Action("tick", c.handleTick).Method(http.MethodGet)
//
// Wire returns the hx-* attributes for an action. Each widget receives a
// URL prefix derived from its name, and Mount panics on a collision.
//
// # Security Model
//
// Props travel with every request, msgpack-encoded in one of two modes:
//   - Signed (default): HMAC-authenticated, visible but tamper-proof
//   - Encrypted: AES-GCM, opaque to clients (use .Sensitive())
//
// Sealed props are bound to the widget that issued them.
//
// Mutating methods require the HX-Request: true header that HTMX sends,
// which blocks cross-origin form posts without extra tokens.
//
// # Events and Flashes
//
//	return hxbs.OK(props).Trigger("shown.bs.collapse", map[string]any{"id": props.ID})
//	return hxbs.OK(props).Flash(hxbs.FlashError, "Save failed")
//
// Events reach listeners through HX-Trigger. Flashes render as
// out-of-band toasts into ToastContainer.
//
// # Registration
//
//	reg := hxbs.NewRegistry(key)
//	hxbs.Mount[components.CollapseProps](reg, components.NewCollapse(content))
//	http.Handle("/_c/", reg.Handler())
package hxbs
