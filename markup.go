package hxbs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Classes joins the non-empty class names with spaces.
//
//	hxbs.Classes("collapse", hxbs.If(show, "show")) // "collapse show"
func Classes(names ...string) string {
	kept := names[:0:0]
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}

// If returns name when cond holds, else "". It pairs with Classes.
func If(cond bool, name string) string {
	if cond {
		return name
	}
	return ""
}

// MergeAttrs merges attribute sets left to right; later sets win.
func MergeAttrs(sets ...templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// RenderAttrs renders attributes as ` key="value"` pairs in key order.
// true renders a bare attribute, false and empty strings are omitted.
func RenderAttrs(attrs templ.Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				sb.WriteString(" " + templ.EscapeString(k))
			}
		case string:
			if v != "" {
				sb.WriteString(" " + templ.EscapeString(k) + `="` + templ.EscapeString(v) + `"`)
			}
		case nil:
		default:
			sb.WriteString(" " + templ.EscapeString(k) + `="` + templ.EscapeString(fmt.Sprint(v)) + `"`)
		}
	}
	return sb.String()
}
