package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/pthm/hxbs"
)

// Box is a terminal region animated by a Panel. One pixel is one row.
//
// Setting a pixel height starts an eased move from the currently rendered
// row count to the new one over the transition duration, the way a CSS
// height transition would. Clearing the height jumps straight to the
// natural size: all rows when expanded, none otherwise.
type Box struct {
	lines    []string
	width    int
	duration time.Duration
	now      func() time.Time

	inline   hxbs.Size
	expanded bool

	from, to int
	start    time.Time
}

// NewBox creates a box showing lines, initially open when expanded.
func NewBox(lines []string, expanded bool, duration time.Duration) *Box {
	b := &Box{duration: duration, expanded: expanded, now: time.Now}
	b.SetLines(lines)
	b.from, b.to = b.target(), b.target()
	return b
}

// SetLines replaces the content.
func (b *Box) SetLines(lines []string) {
	b.lines = lines
	b.width = 0
	for _, l := range lines {
		if n := len([]rune(l)); n > b.width {
			b.width = n
		}
	}
}

// SetExpanded records whether the panel is open. It takes effect the
// next time the height is cleared.
func (b *Box) SetExpanded(expanded bool) {
	b.expanded = expanded
}

// Metrics implements hxbs.Element.
func (b *Box) Metrics() hxbs.Metrics {
	rows := b.Rows()
	return hxbs.Metrics{
		OffsetWidth:  b.width,
		OffsetHeight: rows,
		ScrollWidth:  b.width,
		ScrollHeight: len(b.lines),
	}
}

// SetStyle implements hxbs.Element. Only height affects a terminal box.
func (b *Box) SetStyle(property, value string) {
	if property != string(hxbs.Height) {
		return
	}
	current := b.Rows()

	b.inline = hxbs.Auto
	if rows, ok := parsePx(value); ok {
		b.inline = hxbs.Px(rows)
	}
	b.from, b.to, b.start = current, b.target(), b.now()
	if b.inline.IsAuto() {
		b.from = b.to
	}
}

// Animating reports whether the rendered height is still moving.
func (b *Box) Animating() bool {
	return b.from != b.to && b.now().Sub(b.start) < b.duration
}

// Rows returns the number of rows currently rendered.
func (b *Box) Rows() int {
	if !b.Animating() {
		return b.to
	}
	p := float64(b.now().Sub(b.start)) / float64(b.duration)
	p = p * (2 - p) // ease-out
	return b.from + int(float64(b.to-b.from)*p)
}

// Visible returns the lines currently rendered.
func (b *Box) Visible() []string {
	rows := b.Rows()
	if rows > len(b.lines) {
		rows = len(b.lines)
	}
	if rows < 0 {
		rows = 0
	}
	return b.lines[:rows]
}

func (b *Box) target() int {
	if px, ok := b.inline.Pixels(); ok {
		return px
	}
	if b.expanded {
		return len(b.lines)
	}
	return 0
}

func parsePx(v string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(v, "px"))
	if err != nil || !strings.HasSuffix(v, "px") {
		return 0, false
	}
	return n, true
}
