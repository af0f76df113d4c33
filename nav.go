package hxbs

import (
	"net/url"
	"strings"
)

// Router decides whether a named route is active for the page the
// browser is on.
type Router interface {
	IsActive(currentURL, route string, params ...string) bool
}

// PathRouter is a Router over named path patterns such as
// "/users/{id}". A route is active when the current path equals its URL
// or lies beneath it, so "/users" is active on "/users/7".
type PathRouter struct {
	routes map[string]string
}

// NewPathRouter creates a router from route name to path pattern.
func NewPathRouter(routes map[string]string) *PathRouter {
	r := &PathRouter{routes: make(map[string]string, len(routes))}
	for name, pattern := range routes {
		r.routes[name] = pattern
	}
	return r
}

// URL builds the path of route, substituting {placeholders} with params
// in order. It reports false for unknown routes or missing params.
func (r *PathRouter) URL(route string, params ...string) (string, bool) {
	pattern, ok := r.routes[route]
	if !ok {
		return "", false
	}
	segments := strings.Split(pattern, "/")
	next := 0
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if next >= len(params) {
				return "", false
			}
			segments[i] = url.PathEscape(params[next])
			next++
		}
	}
	return strings.Join(segments, "/"), true
}

// IsActive implements Router.
func (r *PathRouter) IsActive(currentURL, route string, params ...string) bool {
	target, ok := r.URL(route, params...)
	if !ok {
		return false
	}
	return pathActive(currentPath(currentURL), target)
}

// currentPath strips scheme, host and query from a browser URL.
func currentPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

func pathActive(current, target string) bool {
	current = strings.TrimSuffix(current, "/")
	target = strings.TrimSuffix(target, "/")
	if target == "" {
		return current == ""
	}
	return current == target || strings.HasPrefix(current, target+"/")
}

// NavLink is a link nested in a nav item. It addresses either a named
// route (with params) or a plain Href.
type NavLink struct {
	Label    string
	Route    string
	Params   []string
	Href     string
	Disabled bool
}

// IsActive reports whether the link points at the current page.
func (l NavLink) IsActive(router Router, currentURL string) bool {
	if l.Route != "" && router != nil {
		return router.IsActive(currentURL, l.Route, l.Params...)
	}
	if l.Href == "" {
		return false
	}
	return pathActive(currentPath(currentURL), currentPath(l.Href))
}

// URL returns where the link goes.
func (l NavLink) URL(router Router) string {
	if l.Route != "" {
		if pr, ok := router.(*PathRouter); ok {
			if u, ok := pr.URL(l.Route, l.Params...); ok {
				return u
			}
		}
	}
	return l.Href
}

// NavItem is one entry of a nav. Its active and disabled states follow
// its child links unless overridden.
type NavItem struct {
	// LinkTo wraps the item in a link to a route: the route name followed
	// by its params. When set, the router decides whether the item is
	// active.
	LinkTo []string

	// Active and Disabled override the derived state when non-nil.
	Active   *bool
	Disabled *bool

	Links []NavLink
}

// LinkToParams splits LinkTo into route and params.
func (n NavItem) LinkToParams() (route string, params []string, ok bool) {
	if len(n.LinkTo) == 0 {
		return "", nil, false
	}
	return n.LinkTo[0], n.LinkTo[1:], true
}

// IsActive derives the item's active state: the override if set, the
// router's verdict for LinkTo if set, otherwise whether any child link is
// active.
func (n NavItem) IsActive(router Router, currentURL string) bool {
	if n.Active != nil {
		return *n.Active
	}
	if route, params, ok := n.LinkToParams(); ok {
		return router != nil && router.IsActive(currentURL, route, params...)
	}
	return len(n.ActiveLinks(router, currentURL)) > 0
}

// IsDisabled derives the item's disabled state: the override if set,
// otherwise whether any child link is disabled.
func (n NavItem) IsDisabled() bool {
	if n.Disabled != nil {
		return *n.Disabled
	}
	for _, l := range n.Links {
		if l.Disabled {
			return true
		}
	}
	return false
}

// ActiveLinks returns the child links pointing at the current page.
func (n NavItem) ActiveLinks(router Router, currentURL string) []NavLink {
	var active []NavLink
	for _, l := range n.Links {
		if l.IsActive(router, currentURL) {
			active = append(active, l)
		}
	}
	return active
}
