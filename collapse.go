package hxbs

import (
	"fmt"
	"log/slog"
	"time"
)

// Default collapse settings, matching Bootstrap's collapse plugin.
const (
	DefaultTransitionDuration = 350 * time.Millisecond
	DefaultDimension          = Height
)

// Phase is the position of a Panel in its show/hide cycle.
type Phase int

const (
	Collapsed Phase = iota
	Expanding
	Expanded
	Collapsing
)

func (p Phase) String() string {
	switch p {
	case Collapsed:
		return "collapsed"
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	case Collapsing:
		return "collapsing"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Action selects how ExpandedSize measures an element.
type Action int

const (
	// ActionShow measures the full scrollable extent, so a panel grows to
	// fit content larger than its current box.
	ActionShow Action = iota
	// ActionHide measures the rendered extent, so a panel shrinks from
	// what is visible.
	ActionHide
)

// PanelState is a snapshot of a Panel's flags.
type PanelState struct {
	Collapsed     bool
	Active        bool
	Transitioning bool
}

// Hooks are the lifecycle notifications of a Panel. Nil hooks are skipped.
type Hooks struct {
	OnShow   func()
	OnShown  func()
	OnHide   func()
	OnHidden func()
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithCollapsed sets the initial desired state. Panels start collapsed.
func WithCollapsed(collapsed bool) PanelOption {
	return func(p *Panel) {
		p.collapsed = collapsed
	}
}

// WithDimension sets the animated dimension (Height by default).
func WithDimension(d Dimension) PanelOption {
	return func(p *Panel) {
		p.dimension = d
	}
}

// WithCollapsedSize sets the size in pixels of the collapsed panel.
func WithCollapsedSize(px int) PanelOption {
	return func(p *Panel) {
		p.collapsedSize = px
	}
}

// WithExpandedSize sets an explicit expanded size. Auto measures the element.
func WithExpandedSize(s Size) PanelOption {
	return func(p *Panel) {
		p.expandedSize = s
	}
}

// WithTransitionDuration sets how long a show or hide transition runs.
func WithTransitionDuration(d time.Duration) PanelOption {
	return func(p *Panel) {
		p.duration = d
	}
}

// WithResetSize controls whether the inline size is cleared once a
// transition completes. It defaults to true; pass false to keep an
// explicit size on the element at rest.
func WithResetSize(reset bool) PanelOption {
	return func(p *Panel) {
		p.resetSize = reset
	}
}

// WithHooks sets the lifecycle notifications.
func WithHooks(h Hooks) PanelOption {
	return func(p *Panel) {
		p.hooks = h
	}
}

// WithLogger sets the logger used for phase changes (debug level).
func WithLogger(l *slog.Logger) PanelOption {
	return func(p *Panel) {
		p.log = l
	}
}

// WithTransitionInFlight resumes a panel whose transition toward the
// desired state already started elsewhere, typically in an earlier
// request. The completion wait is re-armed on construction. When sized is
// false the target size has not been applied yet and is applied on the
// next tick.
func WithTransitionInFlight(sized bool) PanelOption {
	return func(p *Panel) {
		p.resume = true
		p.resumeSized = sized
	}
}

// Panel is the collapse state machine: it toggles an element between a
// collapsed and an expanded size, driving the inline size before and after
// a timed transition.
//
// A Panel is not safe for concurrent use. All calls, and all callbacks it
// schedules, run on the Scheduler's loop.
type Panel struct {
	el    Element
	sched Scheduler
	hooks Hooks
	log   *slog.Logger

	dimension     Dimension
	collapsedSize int
	expandedSize  Size
	duration      time.Duration
	resetSize     bool

	collapsed     bool
	active        bool
	transitioning bool
	destroyed     bool
	resume        bool
	resumeSized   bool

	// gen identifies the current transition. Callbacks captured by an
	// earlier transition compare against it and drop out when superseded.
	gen uint64
}

// NewPanel creates a panel animating el, scheduled by sched.
//
// It fails with a *ConfigError wrapping ErrInvalidDimension when the
// dimension is neither Height nor Width.
//
//	p, err := hxbs.NewPanel(el, loop,
//	    hxbs.WithCollapsed(true),
//	    hxbs.WithHooks(hxbs.Hooks{OnShown: func() { log.Print("open") }}),
//	)
//	p.SetCollapsed(false)
func NewPanel(el Element, sched Scheduler, opts ...PanelOption) (*Panel, error) {
	p := &Panel{
		el:        el,
		sched:     sched,
		log:       slog.Default(),
		dimension: DefaultDimension,
		duration:  DefaultTransitionDuration,
		resetSize: true,
		collapsed: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.dimension.Valid() {
		return nil, invalidDimension(p.dimension)
	}

	p.active = !p.collapsed
	if p.resume {
		p.gen++
		p.transitioning = true
		p.awaitTransition(p.gen)
		if !p.resumeSized {
			p.nextTarget(p.gen)
		}
	}
	return p, nil
}

// Collapsed returns the desired state.
func (p *Panel) Collapsed() bool { return p.collapsed }

// Active reports whether the show sequence has started and no hide
// sequence has started since. Content should be rendered while active.
func (p *Panel) Active() bool { return p.active }

// Transitioning reports whether a show or hide transition is in flight.
func (p *Panel) Transitioning() bool { return p.transitioning }

// Collapse reports whether the element carries the resting "collapse"
// class, i.e. it is not transitioning.
func (p *Panel) Collapse() bool { return !p.transitioning }

// Collapsing reports whether the element carries the "collapsing" class.
func (p *Panel) Collapsing() bool { return p.transitioning }

// ShowContent reports whether the element is at rest and expanded.
func (p *Panel) ShowContent() bool { return p.Collapse() && p.active }

// Dimension returns the animated dimension.
func (p *Panel) Dimension() Dimension { return p.dimension }

// Duration returns the transition duration.
func (p *Panel) Duration() time.Duration { return p.duration }

// State returns a snapshot of the panel's flags.
func (p *Panel) State() PanelState {
	return PanelState{
		Collapsed:     p.collapsed,
		Active:        p.active,
		Transitioning: p.transitioning,
	}
}

// Phase returns the panel's position in the show/hide cycle.
func (p *Panel) Phase() Phase {
	switch {
	case p.transitioning && p.active:
		return Expanding
	case p.transitioning:
		return Collapsing
	case p.active:
		return Expanded
	}
	return Collapsed
}

// SetCollapsed sets the desired state and starts a transition when it
// flips the panel. It acts only when collapsed disagrees with the
// effective state, i.e. collapsed == Active(), so repeated writes of the
// same value do nothing.
func (p *Panel) SetCollapsed(collapsed bool) {
	p.collapsed = collapsed
	if p.destroyed || collapsed != p.active {
		return
	}
	if collapsed {
		p.hide()
	} else {
		p.show()
	}
}

// Show requests the expanded state.
func (p *Panel) Show() { p.SetCollapsed(false) }

// Hide requests the collapsed state.
func (p *Panel) Hide() { p.SetCollapsed(true) }

// Toggle flips the desired state.
func (p *Panel) Toggle() { p.SetCollapsed(!p.collapsed) }

// Destroy tears the panel down. Pending callbacks become no-ops.
func (p *Panel) Destroy() {
	p.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (p *Panel) Destroyed() bool { return p.destroyed }

// SetCollapsedSize changes the collapsed size. A panel that keeps its
// size at rest and is collapsed applies it immediately.
func (p *Panel) SetCollapsedSize(px int) {
	p.collapsedSize = px
	if !p.resetSize && p.collapsed && !p.transitioning {
		p.mustSetCollapseSize(Px(px))
	}
}

// SetExpandedSize changes the expanded size. A panel that keeps its size
// at rest and is expanded applies it immediately.
func (p *Panel) SetExpandedSize(s Size) {
	p.expandedSize = s
	if !p.resetSize && !p.collapsed && !p.transitioning {
		p.mustSetCollapseSize(s)
	}
}

// ExpandedSize returns the size to expand to (ActionShow) or collapse
// from (ActionHide). An explicit expanded size wins over measurement.
func (p *Panel) ExpandedSize(action Action) int {
	if px, ok := p.expandedSize.Pixels(); ok {
		return px
	}
	m := p.el.Metrics()
	if action == ActionShow {
		return m.Scroll(p.dimension)
	}
	return m.Offset(p.dimension)
}

// SetCollapseSize writes size to the inline style of the animated
// dimension and clears the other one. Auto clears both, handing sizing
// back to the stylesheet.
func (p *Panel) SetCollapseSize(size Size) error {
	if !p.dimension.Valid() {
		return invalidDimension(p.dimension)
	}
	p.el.SetStyle(string(p.dimension.other()), "")
	p.el.SetStyle(string(p.dimension), size.CSS())
	return nil
}

func (p *Panel) mustSetCollapseSize(size Size) {
	if err := p.SetCollapseSize(size); err != nil {
		panic(err)
	}
}

func (p *Panel) show() {
	call(p.hooks.OnShow)
	p.begin(true)
	p.mustSetCollapseSize(Px(p.collapsedSize))
	p.awaitTransition(p.gen)
	p.nextTarget(p.gen)
}

func (p *Panel) hide() {
	call(p.hooks.OnHide)
	p.begin(false)
	p.mustSetCollapseSize(Px(p.ExpandedSize(ActionHide)))
	p.awaitTransition(p.gen)
	p.nextTarget(p.gen)
}

// begin starts a new transition toward active, superseding any in flight.
func (p *Panel) begin(active bool) {
	p.gen++
	p.active = active
	p.transitioning = true
	p.log.Debug("collapse transition", "phase", p.Phase(), "dimension", p.dimension)
}

// nextTarget applies the size transition gen animates toward once the
// starting size has been committed.
func (p *Panel) nextTarget(gen uint64) {
	p.sched.Next(func() {
		if p.stale(gen) {
			return
		}
		if p.active {
			p.mustSetCollapseSize(Px(p.ExpandedSize(ActionShow)))
		} else {
			p.mustSetCollapseSize(Px(p.collapsedSize))
		}
	})
}

// awaitTransition arms the completion of transition gen.
func (p *Panel) awaitTransition(gen uint64) {
	p.sched.TransitionEnd(p.el, p.duration, func() {
		if p.stale(gen) {
			return
		}
		p.transitioning = false
		if p.resetSize {
			p.mustSetCollapseSize(Auto)
		}
		p.log.Debug("collapse transition done", "phase", p.Phase())
		if p.active {
			call(p.hooks.OnShown)
		} else {
			call(p.hooks.OnHidden)
		}
	})
}

func (p *Panel) stale(gen uint64) bool {
	return p.destroyed || gen != p.gen
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
