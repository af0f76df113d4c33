package hxbs

import (
	"strconv"
	"strings"
)

// Dimension names the box dimension a collapse animates.
type Dimension string

const (
	Height Dimension = "height"
	Width  Dimension = "width"
)

// Valid reports whether d is one of the two animatable dimensions.
func (d Dimension) Valid() bool {
	return d == Height || d == Width
}

// other returns the dimension that is not d.
func (d Dimension) other() Dimension {
	if d == Width {
		return Height
	}
	return Width
}

// Size is an inline size in pixels, or Auto when no explicit size applies.
//
// Auto has two meanings depending on where it is used: as an expanded size
// it means "measure the element", and as a style value it means "clear the
// inline override and let the stylesheet decide".
type Size struct {
	px  int
	set bool
}

// Auto is the absent size.
var Auto = Size{}

// Px returns an explicit pixel size.
func Px(n int) Size {
	return Size{px: n, set: true}
}

// IsAuto reports whether no explicit size is set.
func (s Size) IsAuto() bool {
	return !s.set
}

// Pixels returns the explicit size and whether one is set.
func (s Size) Pixels() (int, bool) {
	return s.px, s.set
}

// CSS returns the inline style value for s: "<n>px", or "" for Auto.
func (s Size) CSS() string {
	if !s.set {
		return ""
	}
	return strconv.Itoa(s.px) + "px"
}

func (s Size) String() string {
	if !s.set {
		return "auto"
	}
	return s.CSS()
}

// Metrics are the measurements an Element reports along both axes.
//
// Offset values are the currently rendered extent. Scroll values are the
// full content extent, which can exceed the rendered box while it is
// clipped.
type Metrics struct {
	OffsetWidth  int
	OffsetHeight int
	ScrollWidth  int
	ScrollHeight int
}

// Offset returns the rendered extent along d.
func (m Metrics) Offset(d Dimension) int {
	if d == Width {
		return m.OffsetWidth
	}
	return m.OffsetHeight
}

// Scroll returns the content extent along d.
func (m Metrics) Scroll(d Dimension) int {
	if d == Width {
		return m.ScrollWidth
	}
	return m.ScrollHeight
}

// Element is the on-screen box a Panel animates.
//
// Implementations exist per host: Box for server-rendered markup, and the
// terminal box in package tui.
type Element interface {
	// Metrics measures the element as it is currently laid out.
	Metrics() Metrics
	// SetStyle sets an inline style property. An empty value removes it.
	SetStyle(property, value string)
}

// TransitionNotifier is implemented by elements whose host reports the end
// of a running transition. Schedulers prefer it over the duration timer
// when it fires first.
type TransitionNotifier interface {
	OnTransitionEnd(fn func())
}

// Box is an in-memory Element. It holds inline styles in insertion order
// and reports fixed metrics, which makes it the element of choice for
// server-side rendering where nothing is laid out.
type Box struct {
	metrics Metrics
	keys    []string
	values  map[string]string
	writes  int
}

// NewBox creates a box reporting the given metrics.
func NewBox(m Metrics) *Box {
	return &Box{metrics: m, values: make(map[string]string)}
}

// Metrics implements Element.
func (b *Box) Metrics() Metrics {
	return b.metrics
}

// SetMetrics replaces the reported measurements.
func (b *Box) SetMetrics(m Metrics) {
	b.metrics = m
}

// SetStyle implements Element.
func (b *Box) SetStyle(property, value string) {
	if b.values == nil {
		b.values = make(map[string]string)
	}
	b.writes++
	if value == "" {
		if _, ok := b.values[property]; !ok {
			return
		}
		delete(b.values, property)
		for i, k := range b.keys {
			if k == property {
				b.keys = append(b.keys[:i], b.keys[i+1:]...)
				break
			}
		}
		return
	}
	if _, ok := b.values[property]; !ok {
		b.keys = append(b.keys, property)
	}
	b.values[property] = value
}

// Style returns the inline value of property, or "" when unset.
func (b *Box) Style(property string) string {
	return b.values[property]
}

// Writes counts SetStyle calls, including ones that cleared nothing.
func (b *Box) Writes() int {
	return b.writes
}

// StyleAttr renders the inline styles as a style attribute value,
// e.g. "height: 200px".
func (b *Box) StyleAttr() string {
	parts := make([]string, 0, len(b.keys))
	for _, k := range b.keys {
		parts = append(parts, k+": "+b.values[k])
	}
	return strings.Join(parts, "; ")
}
