package components

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxbs"
)

// EventNavSelect is triggered when a nav link is selected.
const EventNavSelect = "nav:select"

// NavEntry is a labelled nav item.
type NavEntry struct {
	Label string       `msgpack:"l,omitempty"`
	Item  hxbs.NavItem `msgpack:"i"`
}

// NavProps defines the props for the Nav widget.
type NavProps struct {
	ID      string     `msgpack:"id,omitempty"`
	Variant string     `msgpack:"v,omitempty"` // tabs, pills
	Entries []NavEntry `msgpack:"e"`
	// Current overrides the browser URL once a link has been selected.
	Current string `msgpack:"c,omitempty"`
	// Selected addresses the link a select request is for: "item" or
	// "item.link".
	Selected string `msgpack:"s,omitempty"`
}

// Nav renders a Bootstrap nav whose items follow the current page.
type Nav struct {
	*hxbs.Component[NavProps]
	router hxbs.Router
}

// NewNav creates a nav widget resolving routes with router.
func NewNav(router hxbs.Router) *Nav {
	c := &Nav{
		Component: hxbs.New[NavProps]("nav"),
		router:    router,
	}
	c.Action("select", c.handleSelect)
	return c
}

// Hydrate is a no-op; the router is resolved at render time.
func (c *Nav) Hydrate(ctx context.Context, props *NavProps) error {
	return nil
}

// Render produces the HTML output.
func (c *Nav) Render(ctx context.Context, props NavProps) templ.Component {
	return navTemplate(c, props)
}

// handleSelect marks the selected link current, pushes its URL and
// reports the selection.
func (c *Nav) handleSelect(ctx context.Context, props NavProps, r *http.Request) hxbs.Result[NavProps] {
	item, link, err := parseSelected(props.Selected)
	if err != nil || item >= len(props.Entries) {
		return hxbs.Err(props, fmt.Errorf("nav %q: bad selection %q: %w", props.ID, props.Selected, hxbs.ErrNotFound))
	}
	entry := props.Entries[item]

	var href string
	if link < 0 {
		href = c.itemURL(entry.Item)
	} else if link < len(entry.Item.Links) {
		if entry.Item.Links[link].Disabled {
			return hxbs.OK(props)
		}
		href = entry.Item.Links[link].URL(c.router)
	} else {
		return hxbs.Err(props, fmt.Errorf("nav %q: bad selection %q: %w", props.ID, props.Selected, hxbs.ErrNotFound))
	}
	if entry.Item.IsDisabled() {
		return hxbs.OK(props)
	}

	props.Current = href
	props.Selected = ""
	res := hxbs.OK(props).Trigger(EventNavSelect, map[string]any{
		"id":   props.ID,
		"item": item,
		"href": href,
	})
	if href != "" {
		res = res.PushURL(href)
	}
	return res
}

func (c *Nav) itemURL(item hxbs.NavItem) string {
	route, params, ok := item.LinkToParams()
	if !ok {
		return ""
	}
	return hxbs.NavLink{Route: route, Params: params}.URL(c.router)
}

func parseSelected(s string) (item, link int, err error) {
	head, tail, nested := strings.Cut(s, ".")
	if item, err = strconv.Atoi(head); err != nil || item < 0 {
		return 0, 0, fmt.Errorf("item index %q", head)
	}
	if !nested {
		return item, -1, nil
	}
	if link, err = strconv.Atoi(tail); err != nil || link < 0 {
		return 0, 0, fmt.Errorf("link index %q", tail)
	}
	return item, link, nil
}

func navTemplate(c *Nav, props NavProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		current := props.Current
		if current == "" {
			current = hxbs.CurrentURLFrom(ctx)
		}

		var variant string
		if props.Variant != "" {
			variant = "nav-" + props.Variant
		}
		var sb strings.Builder
		sb.WriteString("<ul" + hxbs.RenderAttrs(templ.Attributes{
			"id":    props.ID,
			"class": hxbs.Classes("nav", variant),
		}) + ">")

		for i, e := range props.Entries {
			active := e.Item.IsActive(c.router, current)
			disabled := e.Item.IsDisabled()
			sb.WriteString(`<li class="` + hxbs.Classes("nav-item", hxbs.If(active, "active"), hxbs.If(disabled, "disabled")) + `">`)

			if _, _, ok := e.Item.LinkToParams(); ok {
				sb.WriteString(c.link(props, strconv.Itoa(i), c.itemURL(e.Item), e.Label, active, disabled))
			} else if e.Label != "" {
				sb.WriteString(`<span class="nav-text">` + templ.EscapeString(e.Label) + `</span>`)
			}
			for j, l := range e.Item.Links {
				sel := strconv.Itoa(i) + "." + strconv.Itoa(j)
				sb.WriteString(c.link(props, sel, l.URL(c.router), l.Label, l.IsActive(c.router, current), l.Disabled))
			}
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func (c *Nav) link(props NavProps, selected, href, label string, active, disabled bool) string {
	attrs := templ.Attributes{
		"class": hxbs.Classes("nav-link", hxbs.If(active, "active"), hxbs.If(disabled, "disabled")),
		"href":  href,
	}
	if active {
		attrs["aria-current"] = "page"
	}
	if disabled {
		attrs["aria-disabled"] = "true"
		attrs["tabindex"] = "-1"
	} else {
		props.Selected = selected
		props.Current = ""
		attrs = hxbs.MergeAttrs(attrs, c.Wire("select", props), templ.Attributes{
			"hx-target": "closest ul",
			"hx-swap":   string(hxbs.SwapOuter),
		})
	}
	return "<a" + hxbs.RenderAttrs(attrs) + ">" + templ.EscapeString(label) + "</a>"
}
