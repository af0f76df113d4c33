package hxbs

import (
	"context"
	"fmt"
	"sync"
)

// ButtonState is the settle state of a button's click action.
type ButtonState int

const (
	ButtonDefault ButtonState = iota
	ButtonPending
	ButtonFulfilled
	ButtonRejected
)

func (s ButtonState) String() string {
	switch s {
	case ButtonDefault:
		return "default"
	case ButtonPending:
		return "pending"
	case ButtonFulfilled:
		return "fulfilled"
	case ButtonRejected:
		return "rejected"
	}
	return fmt.Sprintf("ButtonState(%d)", int(s))
}

// ParseButtonState parses the String form of a state. Unknown values
// parse as ButtonDefault.
func ParseButtonState(s string) ButtonState {
	switch s {
	case "pending":
		return ButtonPending
	case "fulfilled":
		return ButtonFulfilled
	case "rejected":
		return ButtonRejected
	}
	return ButtonDefault
}

// ButtonText holds the label for each state. Empty labels fall back to
// Default.
type ButtonText struct {
	Default   string
	Pending   string
	Fulfilled string
	Rejected  string
}

// For returns the label shown in state s.
func (t ButtonText) For(s ButtonState) string {
	var text string
	switch s {
	case ButtonPending:
		text = t.Pending
	case ButtonFulfilled:
		text = t.Fulfilled
	case ButtonRejected:
		text = t.Rejected
	}
	if text == "" {
		return t.Default
	}
	return text
}

// ClickFunc is a button's click action. A nil error fulfills the click, a
// non-nil error rejects it.
type ClickFunc func(ctx context.Context, value string) error

// Button tracks the busy state of a button whose click runs an action.
//
// A click moves the button to pending until the action returns. A later
// click supersedes an earlier one still in flight: only the latest
// settles the state.
type Button struct {
	mu      sync.Mutex
	state   ButtonState
	seq     uint64
	text    ButtonText
	onClick ClickFunc
}

// NewButton creates a button with the given labels and click action.
func NewButton(text ButtonText, onClick ClickFunc) *Button {
	return &Button{text: text, onClick: onClick}
}

// RestoreButton creates a button already in state s.
func RestoreButton(text ButtonText, onClick ClickFunc, s ButtonState) *Button {
	return &Button{text: text, onClick: onClick, state: s}
}

// Click runs the click action with value. The returned channel receives
// the action's error once it settles and is then closed.
//
// A button without an action ignores clicks; the channel is closed at once.
func (b *Button) Click(ctx context.Context, value string) <-chan error {
	done := make(chan error, 1)
	if b.onClick == nil {
		close(done)
		return done
	}

	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.state = ButtonPending
	b.mu.Unlock()

	go func() {
		defer close(done)
		err := b.onClick(ctx, value)

		b.mu.Lock()
		if seq == b.seq && b.state == ButtonPending {
			if err != nil {
				b.state = ButtonRejected
			} else {
				b.state = ButtonFulfilled
			}
		}
		b.mu.Unlock()
		done <- err
	}()
	return done
}

// Reset returns the button to its default state. A click still in flight
// no longer settles it.
func (b *Button) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.state = ButtonDefault
}

// State returns the current state.
func (b *Button) State() ButtonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Label returns the text for the current state.
func (b *Button) Label() string {
	return b.text.For(b.State())
}

func (b *Button) IsPending() bool   { return b.State() == ButtonPending }
func (b *Button) IsFulfilled() bool { return b.State() == ButtonFulfilled }
func (b *Button) IsRejected() bool  { return b.State() == ButtonRejected }

// IsSettled reports whether the last click fulfilled or rejected.
func (b *Button) IsSettled() bool {
	s := b.State()
	return s == ButtonFulfilled || s == ButtonRejected
}

// ButtonStyle is the visual configuration of a button.
type ButtonStyle struct {
	Type    string // primary, secondary, danger, ... (default secondary)
	Size    string // sm, lg
	Active  bool
	Block   bool
	Outline bool
}

// Classes returns the Bootstrap classes for the style.
func (s ButtonStyle) Classes() string {
	typ := s.Type
	if typ == "" {
		typ = "secondary"
	}
	if s.Outline {
		typ = "outline-" + typ
	}
	size := ""
	if s.Size != "" {
		size = "btn-" + s.Size
	}
	return Classes("btn", "btn-"+typ, size, If(s.Active, "active"), If(s.Block, "btn-block"))
}

// ButtonIcon picks the icon class: the active/inactive pair when set,
// otherwise icon.
func ButtonIcon(icon, iconActive, iconInactive string, active bool) string {
	if active && iconActive != "" {
		return iconActive
	}
	if !active && iconInactive != "" {
		return iconInactive
	}
	return icon
}
