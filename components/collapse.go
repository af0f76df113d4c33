package components

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/pthm/hxbs"
)

// Collapse lifecycle events, named after Bootstrap's collapse plugin.
const (
	EventShow   = "show.bs.collapse"
	EventShown  = "shown.bs.collapse"
	EventHide   = "hide.bs.collapse"
	EventHidden = "hidden.bs.collapse"
)

// Transition steps carried in CollapseProps.Step.
const (
	stepRest   = 0 // no transition in flight
	stepTick   = 1 // starting size rendered, target size pending
	stepSettle = 2 // target size rendered, completion pending
)

// CollapseProps holds a collapse panel's state between requests.
type CollapseProps struct {
	ID            string `msgpack:"id"`
	Title         string `msgpack:"t,omitempty"`
	Collapsed     bool   `msgpack:"c"`
	Step          int    `msgpack:"st,omitempty"`
	Dimension     string `msgpack:"d,omitempty"`
	CollapsedSize int    `msgpack:"cs,omitempty"`
	// ExpandedSize is an explicit expanded size; 0 measures ContentSize.
	ExpandedSize int `msgpack:"es,omitempty"`
	// ContentSize is the natural size of the body along the dimension. The
	// server cannot lay out the page, so it stands in for measurement.
	ContentSize int  `msgpack:"ns,omitempty"`
	DurationMS  int  `msgpack:"ms,omitempty"`
	KeepSize    bool `msgpack:"k,omitempty"`

	// Hydrated data (not serialized)
	Body templ.Component `msgpack:"-"`
	view *collapseView
}

// Transitioning reports whether a transition is in flight.
func (p CollapseProps) Transitioning() bool {
	return p.Step != stepRest
}

func (p CollapseProps) dimension() hxbs.Dimension {
	if p.Dimension == "" {
		return hxbs.DefaultDimension
	}
	return hxbs.Dimension(p.Dimension)
}

func (p CollapseProps) duration() time.Duration {
	if p.DurationMS <= 0 {
		return hxbs.DefaultTransitionDuration
	}
	return time.Duration(p.DurationMS) * time.Millisecond
}

// collapseView is what Render draws, taken from a Panel.
type collapseView struct {
	class    string
	style    string
	expanded bool
}

// ContentFunc returns the body of the panel with the given id.
type ContentFunc func(ctx context.Context, id string) (templ.Component, error)

// Collapse is a Bootstrap collapse panel driven over HTMX.
//
// A transition spans three requests, one per step of the Panel state
// machine: toggle renders the starting size, the next-tick request
// renders the target size (HTMX's settle delay lets the CSS transition
// run between the two), and the settle request, fired after the
// transition duration, renders the resting state.
type Collapse struct {
	*hxbs.Component[CollapseProps]
	content ContentFunc
	log     *slog.Logger
}

// NewCollapse creates a collapse widget whose bodies come from content.
func NewCollapse(content ContentFunc) *Collapse {
	c := &Collapse{
		Component: hxbs.New[CollapseProps]("collapse"),
		content:   content,
		log:       slog.Default(),
	}
	c.Action("toggle", c.handleToggle)
	c.Action("show", c.handleShow)
	c.Action("hide", c.handleHide)
	c.Action("tick", c.handleTick).Method(http.MethodGet)
	c.Action("settle", c.handleSettle).Method(http.MethodGet)
	return c
}

// WithLogger sets the logger handed to each Panel.
func (c *Collapse) WithLogger(l *slog.Logger) *Collapse {
	c.log = l
	return c
}

// Hydrate loads the panel body.
func (c *Collapse) Hydrate(ctx context.Context, props *CollapseProps) error {
	if c.content == nil {
		return nil
	}
	body, err := c.content(ctx, props.ID)
	if err != nil {
		return fmt.Errorf("collapse %q: %w", props.ID, err)
	}
	props.Body = body
	return nil
}

// Render produces the HTML output.
func (c *Collapse) Render(ctx context.Context, props CollapseProps) templ.Component {
	if props.view == nil {
		if _, _, _, err := c.panel(&props, nil); err != nil {
			return errorComponent(err)
		}
	}
	return collapseTemplate(c, props)
}

func (c *Collapse) handleToggle(ctx context.Context, props CollapseProps, r *http.Request) hxbs.Result[CollapseProps] {
	return c.request(props, !props.Collapsed)
}

func (c *Collapse) handleShow(ctx context.Context, props CollapseProps, r *http.Request) hxbs.Result[CollapseProps] {
	return c.request(props, false)
}

func (c *Collapse) handleHide(ctx context.Context, props CollapseProps, r *http.Request) hxbs.Result[CollapseProps] {
	return c.request(props, true)
}

// request flips the desired state, rendering the starting size.
func (c *Collapse) request(props CollapseProps, collapsed bool) hxbs.Result[CollapseProps] {
	var events []string
	panel, box, _, err := c.panel(&props, &events)
	if err != nil {
		return hxbs.Err(props, err)
	}

	was := panel.Active()
	panel.SetCollapsed(collapsed)
	if panel.Active() != was {
		props.Step = stepTick
	}
	return c.result(panel, box, props, events)
}

// handleTick commits the target size of the transition in flight.
func (c *Collapse) handleTick(ctx context.Context, props CollapseProps, r *http.Request) hxbs.Result[CollapseProps] {
	if props.Step != stepTick {
		return hxbs.OK(props)
	}
	var events []string
	panel, box, sched, err := c.panel(&props, &events)
	if err != nil {
		return hxbs.Err(props, err)
	}
	sched.Tick()
	props.Step = stepSettle
	return c.result(panel, box, props, events)
}

// handleSettle completes the transition in flight.
func (c *Collapse) handleSettle(ctx context.Context, props CollapseProps, r *http.Request) hxbs.Result[CollapseProps] {
	if props.Step != stepSettle {
		return hxbs.OK(props)
	}
	var events []string
	panel, box, sched, err := c.panel(&props, &events)
	if err != nil {
		return hxbs.Err(props, err)
	}
	sched.Settle()
	props.Step = stepRest
	return c.result(panel, box, props, events)
}

// panel rebuilds the state machine for props on a request-scoped
// scheduler and records the view it produces.
func (c *Collapse) panel(props *CollapseProps, events *[]string) (*hxbs.Panel, *hxbs.Box, *hxbs.ManualScheduler, error) {
	box := hxbs.NewBox(props.metrics())
	sched := hxbs.NewManualScheduler()

	emit := func(name string) func() {
		return func() {
			if events != nil {
				*events = append(*events, name)
			}
		}
	}

	opts := []hxbs.PanelOption{
		hxbs.WithCollapsed(props.Collapsed),
		hxbs.WithDimension(props.dimension()),
		hxbs.WithCollapsedSize(props.CollapsedSize),
		hxbs.WithTransitionDuration(props.duration()),
		hxbs.WithResetSize(!props.KeepSize),
		hxbs.WithLogger(c.log.With("collapse", props.ID)),
		hxbs.WithHooks(hxbs.Hooks{
			OnShow:   emit(EventShow),
			OnShown:  emit(EventShown),
			OnHide:   emit(EventHide),
			OnHidden: emit(EventHidden),
		}),
	}
	if props.ExpandedSize > 0 {
		opts = append(opts, hxbs.WithExpandedSize(hxbs.Px(props.ExpandedSize)))
	}
	switch props.Step {
	case stepTick:
		opts = append(opts, hxbs.WithTransitionInFlight(false))
	case stepSettle:
		opts = append(opts, hxbs.WithTransitionInFlight(true))
	}

	panel, err := hxbs.NewPanel(box, sched, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	props.restore(panel)
	props.view = newCollapseView(panel, box)
	return panel, box, sched, nil
}

// result captures the panel after a step and announces the lifecycle
// events the step raised.
func (c *Collapse) result(panel *hxbs.Panel, box *hxbs.Box, props CollapseProps, events []string) hxbs.Result[CollapseProps] {
	props.Collapsed = panel.Collapsed()
	if !panel.Transitioning() {
		props.Step = stepRest
	}
	props.view = newCollapseView(panel, box)

	res := hxbs.OK(props)
	for _, e := range events {
		res = res.Trigger(e, map[string]any{"id": props.ID})
	}
	return res
}

func newCollapseView(p *hxbs.Panel, box *hxbs.Box) *collapseView {
	return &collapseView{
		class: hxbs.Classes(
			hxbs.If(p.Collapse(), "collapse"),
			hxbs.If(p.Collapsing(), "collapsing"),
			hxbs.If(p.ShowContent(), "show"),
		),
		style:    box.StyleAttr(),
		expanded: p.Active(),
	}
}

// metrics stands in for layout. The panel renders its content size
// unless it rests collapsed.
func (p CollapseProps) metrics() hxbs.Metrics {
	offset := p.ContentSize
	if p.Collapsed && p.Step == stepRest {
		offset = p.CollapsedSize
	}
	m := hxbs.Metrics{}
	if p.dimension() == hxbs.Width {
		m.OffsetWidth, m.ScrollWidth = offset, p.ContentSize
	} else {
		m.OffsetHeight, m.ScrollHeight = offset, p.ContentSize
	}
	return m
}

// restore writes the inline size the element carried into this request.
func (p CollapseProps) restore(panel *hxbs.Panel) {
	var size int
	switch {
	case p.Step == stepTick && p.Collapsed:
		size = panel.ExpandedSize(hxbs.ActionHide)
	case p.Step == stepTick:
		size = p.CollapsedSize
	case p.Step == stepRest && !p.KeepSize:
		return
	case p.Collapsed:
		size = p.CollapsedSize
	default:
		size = panel.ExpandedSize(hxbs.ActionShow)
	}
	_ = panel.SetCollapseSize(hxbs.Px(size))
}

func errorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return err
	})
}
