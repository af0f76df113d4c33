// Package server serves the widget showcase: a nav, collapse panels and
// stateful buttons on Echo.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxbs"
	hxbsecho "github.com/pthm/hxbs/adapters/echo"
	"github.com/pthm/hxbs/components"
	"github.com/pthm/hxbs/internal/config"
)

// Route names and paths of the showcase pages.
var routes = map[string]string{
	"home":    "/",
	"panels":  "/panels",
	"buttons": "/buttons",
	"panel":   "/panels/{id}",
}

// Panel is a collapsible section of the showcase.
type Panel struct {
	ID    string
	Title string
	Body  string
	// Rows approximates the body's natural height in pixels.
	Rows int
}

var panels = []Panel{
	{ID: "what", Title: "What is this?", Body: "Server-rendered Bootstrap widgets driven by htmx.", Rows: 48},
	{ID: "how", Title: "How does the animation work?", Body: "Each response renders one step of the transition and schedules the next.", Rows: 72},
	{ID: "state", Title: "Where is the state?", Body: "In signed props carried by every widget request.", Rows: 48},
}

var buttons = map[string]components.ButtonProps{
	"save": {
		ID:    "save",
		Value: "draft",
		Text:  hxbs.ButtonText{Default: "Save", Pending: "Saving…", Fulfilled: "Saved", Rejected: "Failed"},
		Style: hxbs.ButtonStyle{Type: "primary"},
	},
	"break": {
		ID:    "break",
		Text:  hxbs.ButtonText{Default: "Break", Pending: "Breaking…", Rejected: "Broken"},
		Style: hxbs.ButtonStyle{Type: "danger", Outline: true},
	},
}

// Server is the showcase application.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	log     *slog.Logger
	router  *hxbs.PathRouter
	widgets *components.Widgets
}

// New builds the showcase on a fresh Echo instance.
func New(cfg *config.Config, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		cfg:    cfg,
		log:    log,
		router: hxbs.NewPathRouter(routes),
	}

	reg := hxbsecho.Mount(e, hxbsecho.WithKey(cfg.SigningKey()), hxbsecho.WithLogger(log))
	s.widgets = components.Init(reg, s.content, s.router, map[string]hxbs.ClickFunc{
		"save":  s.save,
		"break": s.fail,
	})

	e.Use(s.logRequests)
	e.GET("/", s.page)
	e.GET("/panels", s.page)
	e.GET("/panels/:id", s.page)
	e.GET("/buttons", s.page)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Debug("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"took", time.Since(start),
		)
		return err
	}
}

func (s *Server) content(ctx context.Context, id string) (templ.Component, error) {
	for _, p := range panels {
		if p.ID == id {
			return templ.Raw(`<div class="card card-body">` + templ.EscapeString(p.Body) + `</div>`), nil
		}
	}
	return nil, fmt.Errorf("panel %q: %w", id, hxbs.ErrNotFound)
}

func (s *Server) save(ctx context.Context, value string) error {
	select {
	case <-time.After(300 * time.Millisecond):
		s.log.Info("saved", "value", value)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) fail(ctx context.Context, value string) error {
	return errors.New("this button always fails")
}

func (s *Server) page(c echo.Context) error {
	open := c.Param("id")
	return hxbsecho.Render(c, s.layout(open))
}

func (s *Server) nav() components.NavProps {
	return components.NavProps{
		ID:      "main-nav",
		Variant: "pills",
		Entries: []components.NavEntry{
			{Label: "Home", Item: hxbs.NavItem{LinkTo: []string{"home"}}},
			{Label: "Panels", Item: hxbs.NavItem{
				LinkTo: []string{"panels"},
				Links: []hxbs.NavLink{
					{Label: "What", Route: "panel", Params: []string{"what"}},
					{Label: "How", Route: "panel", Params: []string{"how"}},
				},
			}},
			{Label: "Buttons", Item: hxbs.NavItem{LinkTo: []string{"buttons"}}},
			{Label: "Docs", Item: hxbs.NavItem{Links: []hxbs.NavLink{
				{Label: "Bootstrap", Href: "https://getbootstrap.com/docs/5.3/components/collapse/"},
				{Label: "Soon", Href: "#", Disabled: true},
			}}},
		},
	}
}

func (s *Server) collapse(p Panel, open string) components.CollapseProps {
	cfg := s.cfg.Collapse
	return components.CollapseProps{
		ID:          p.ID,
		Title:       p.Title,
		Collapsed:   p.ID != open,
		Dimension:   string(cfg.Dimension),
		ContentSize: p.Rows,
		DurationMS:  int(cfg.Duration / time.Millisecond),
		KeepSize:    !cfg.ResetSize,
	}
}

func (s *Server) layout(open string) templ.Component {
	parts := []templ.Component{
		templ.Raw(pageHead),
		hxbs.Embed[components.NavProps](s.widgets.Nav, s.nav()),
		templ.Raw(`<section class="my-4"><h2 class="h4">Panels</h2>`),
	}
	for _, p := range panels {
		parts = append(parts, hxbs.Embed[components.CollapseProps](s.widgets.Collapse, s.collapse(p, open)))
	}
	parts = append(parts,
		templ.Raw(`</section><section class="my-4"><h2 class="h4">Buttons</h2>`),
		hxbs.Embed[components.ButtonProps](s.widgets.Buttons["save"], buttons["save"]),
		templ.Raw(" "),
		hxbs.Embed[components.ButtonProps](s.widgets.Buttons["break"], buttons["break"]),
		templ.Raw(`</section>`),
		hxbs.ToastContainer(),
		templ.Raw(pageFoot),
	)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, part := range parts {
			if err := part.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>hxbs</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
<script src="https://unpkg.com/htmx.org@2.0.4"></script>
<style>.collapsing{transition-duration:var(--hx-collapse-duration,.35s)}</style>
</head>
<body class="container py-4">
`

const pageFoot = `
</body>
</html>
`
