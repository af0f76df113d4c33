package components

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pthm/hxbs"
)

// EventButtonClick is triggered after every settled click.
const EventButtonClick = "button:click"

// ButtonProps defines the props for the Button widget.
type ButtonProps struct {
	ID       string           `msgpack:"id,omitempty"`
	Title    string           `msgpack:"ti,omitempty"`
	Type     string           `msgpack:"ty,omitempty"` // button attribute, "button" by default
	Value    string           `msgpack:"v,omitempty"`
	Text     hxbs.ButtonText  `msgpack:"tx"`
	Style    hxbs.ButtonStyle `msgpack:"s"`
	Icon     string           `msgpack:"i,omitempty"`
	IconOn   string           `msgpack:"ia,omitempty"`
	IconOff  string           `msgpack:"ii,omitempty"`
	Disabled bool             `msgpack:"d,omitempty"`
	State    string           `msgpack:"st,omitempty"`
}

func (p ButtonProps) state() hxbs.ButtonState {
	return hxbs.ParseButtonState(p.State)
}

// Button is a button whose click runs a server-side action and shows
// the action's settle state in its label.
type Button struct {
	*hxbs.Component[ButtonProps]
	onClick hxbs.ClickFunc
}

// NewButton creates a button widget running onClick. name tells apart
// buttons with different actions.
func NewButton(name string, onClick hxbs.ClickFunc) *Button {
	c := &Button{
		Component: hxbs.New[ButtonProps]("button-" + name),
		onClick:   onClick,
	}
	c.Action("click", c.handleClick)
	c.Action("reset", c.handleReset)
	return c
}

// Hydrate is a no-op; buttons carry everything in props.
func (c *Button) Hydrate(ctx context.Context, props *ButtonProps) error {
	return nil
}

// Render produces the HTML output.
func (c *Button) Render(ctx context.Context, props ButtonProps) templ.Component {
	return buttonTemplate(c, props)
}

// handleClick runs the click action and renders its outcome.
func (c *Button) handleClick(ctx context.Context, props ButtonProps, r *http.Request) hxbs.Result[ButtonProps] {
	if err := r.ParseForm(); err != nil {
		return hxbs.Err(props, err)
	}
	value := props.Value
	if v := r.FormValue("value"); v != "" {
		value = v
	}

	b := hxbs.RestoreButton(props.Text, c.onClick, props.state())
	err := <-b.Click(ctx, value)
	props.State = b.State().String()

	res := hxbs.OK(props).Trigger(EventButtonClick, map[string]any{
		"id":    props.ID,
		"state": props.State,
	})
	if err != nil {
		res = res.Flash(hxbs.FlashError, err.Error())
	}
	return res
}

// handleReset returns the button to its default label.
func (c *Button) handleReset(ctx context.Context, props ButtonProps, r *http.Request) hxbs.Result[ButtonProps] {
	b := hxbs.RestoreButton(props.Text, c.onClick, props.state())
	b.Reset()
	props.State = b.State().String()
	return hxbs.OK(props)
}

func buttonTemplate(c *Button, props ButtonProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		state := props.state()
		typ := props.Type
		if typ == "" {
			typ = "button"
		}

		attrs := hxbs.MergeAttrs(c.Wire("click", props), templ.Attributes{
			"id":                props.ID,
			"type":              typ,
			"title":             props.Title,
			"class":             props.Style.Classes(),
			"disabled":          props.Disabled,
			"data-state":        state.String(),
			"data-pending-text": props.Text.Pending,
			"hx-swap":           string(hxbs.SwapOuter),
			"hx-disabled-elt":   "this",
		})

		label := templ.EscapeString(props.Text.For(state))
		if icon := hxbs.ButtonIcon(props.Icon, props.IconOn, props.IconOff, props.Style.Active); icon != "" {
			label = `<i class="` + templ.EscapeString(icon) + `"></i> ` + label
		}
		_, err := io.WriteString(w, "<button"+hxbs.RenderAttrs(attrs)+">"+label+"</button>")
		return err
	})
}
