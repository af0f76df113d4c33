package components

import (
	"sort"

	"github.com/pthm/hxbs"
)

// Widgets holds the mounted widgets of an application.
type Widgets struct {
	Collapse *Collapse
	Nav      *Nav
	Buttons  map[string]*Button
}

// Init creates all widgets with their dependencies and mounts them.
// Call this once at application startup before handling requests.
//
// Usage:
//
//	reg := hxbs.NewRegistry(key)
//	w := components.Init(reg, content, router, clicks)
//	mux.Handle("/_c/", reg.Handler())
func Init(reg *hxbs.Registry, content ContentFunc, router hxbs.Router, clicks map[string]hxbs.ClickFunc) *Widgets {
	w := &Widgets{
		Collapse: NewCollapse(content).WithLogger(reg.Logger()),
		Nav:      NewNav(router),
		Buttons:  make(map[string]*Button, len(clicks)),
	}
	hxbs.Mount[CollapseProps](reg, w.Collapse)
	hxbs.Mount[NavProps](reg, w.Nav)

	names := make([]string, 0, len(clicks))
	for name := range clicks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b := NewButton(name, clicks[name])
		hxbs.Mount[ButtonProps](reg, b)
		w.Buttons[name] = b
	}
	return w
}
