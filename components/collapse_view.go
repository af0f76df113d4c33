package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pthm/hxbs"
)

// collapseTemplate renders the panel inside a wrapper that every step
// swaps as a whole, so the toggler always carries the latest props.
func collapseTemplate(c *Collapse, props CollapseProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wrap := templ.Attributes{
			"id":    props.ID + "-wrap",
			"class": "hx-collapse",
		}
		ms := strconv.FormatInt(props.duration().Milliseconds(), 10) + "ms"
		switch props.Step {
		case stepTick:
			wrap = hxbs.MergeAttrs(wrap, c.Wire("tick", props), templ.Attributes{
				"hx-trigger": "load",
				"hx-swap":    hxbs.SwapOuter.Settle(20),
			})
		case stepSettle:
			wrap = hxbs.MergeAttrs(wrap, c.Wire("settle", props), templ.Attributes{
				"hx-trigger": "load delay:" + ms,
				"hx-swap":    string(hxbs.SwapOuter),
			})
		}

		if props.Step != stepRest {
			// Read by the .collapsing transition rule of the page.
			wrap["style"] = "--hx-collapse-duration: " + ms
		}

		toggler := hxbs.MergeAttrs(c.Wire("toggle", props), templ.Attributes{
			"type":          "button",
			"class":         "btn btn-link",
			"aria-controls": props.ID,
			"aria-expanded": strconv.FormatBool(props.view.expanded),
			"hx-target":     "#" + props.ID + "-wrap",
			"hx-swap":       string(hxbs.SwapOuter),
		})

		panel := templ.Attributes{
			"id":    props.ID,
			"class": props.view.class,
			"style": props.view.style,
		}

		if _, err := io.WriteString(w, "<div"+hxbs.RenderAttrs(wrap)+">"); err != nil {
			return err
		}
		if props.Title != "" {
			if _, err := io.WriteString(w, "<button"+hxbs.RenderAttrs(toggler)+">"+templ.EscapeString(props.Title)+"</button>"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "<div"+hxbs.RenderAttrs(panel)+">"); err != nil {
			return err
		}
		if props.Body != nil {
			if err := props.Body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div></div>")
		return err
	})
}
