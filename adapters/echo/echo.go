// Package hxbsecho serves hxbs widgets from Echo.
//
//	e := echo.New()
//	reg := hxbsecho.Mount(e, hxbsecho.WithKey(key))
//	widgets := components.Init(reg, content, router, clicks)
//
// MountGroup puts the widget routes behind a group's middleware:
//
//	reg := hxbsecho.MountGroup(e.Group("", sessionMiddleware))
package hxbsecho

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxbs"
)

// Path is the prefix every widget URL is built under.
const Path = "/_c/"

// Option configures Mount and MountGroup.
type Option func(*settings)

type settings struct {
	key    []byte
	logger *slog.Logger
}

// WithKey sets the props key: 32 random bytes, shared by every instance
// that serves the same pages. Without it each process draws its own key,
// and URLs rendered by one process fail on another.
func WithKey(key []byte) Option {
	return func(s *settings) { s.key = key }
}

// WithLogger sets the logger for widget failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// Mount registers the widget routes on e.
func Mount(e *echo.Echo, opts ...Option) *hxbs.Registry {
	reg, h := build(opts)
	e.Any(Path+"*", h)
	return reg
}

// MountGroup registers the widget routes on g, which must not add a path
// prefix.
func MountGroup(g *echo.Group, opts ...Option) *hxbs.Registry {
	reg, h := build(opts)
	g.Any(Path+"*", h)
	return reg
}

func build(opts []Option) (*hxbs.Registry, echo.HandlerFunc) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.key == nil {
		s.key = make([]byte, 32)
		if _, err := rand.Read(s.key); err != nil {
			panic(fmt.Sprintf("hxbsecho: generate key: %v", err))
		}
	}

	var ropts []hxbs.RegistryOption
	if s.logger != nil {
		ropts = append(ropts, hxbs.WithRegistryLogger(s.logger))
	}
	reg := hxbs.NewRegistry(s.key, ropts...)
	return reg, echo.WrapHandler(reg.Handler())
}

// Render writes a page to the response. Widgets rendered inside it see the
// request URL through hxbs.CurrentURLFrom, which is how nav items know
// whether they are active.
func Render(c echo.Context, page templ.Component) error {
	req := c.Request()
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return page.Render(hxbs.WithCurrentURL(req.Context(), req.URL.String()), c.Response())
}
