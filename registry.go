package hxbs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Registry manages widget registration and routing.
type Registry struct {
	mu       sync.RWMutex
	mux      *http.ServeMux
	encoder  *Encoder
	prefixes map[string]string // prefix -> widget name
	log      *slog.Logger

	// OnError is called when a widget returns an error.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger for dispatch errors.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		reg.log = l
	}
}

// NewRegistry creates a new widget registry with the given encryption key.
func NewRegistry(encryptionKey []byte, opts ...RegistryOption) *Registry {
	enc, err := NewEncoder(encryptionKey)
	if err != nil {
		panic(fmt.Sprintf("hxbs: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:      http.NewServeMux(),
		encoder:  enc,
		prefixes: make(map[string]string),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(reg)
	}

	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case IsNotFound(err):
			http.Error(w, "Not found", http.StatusNotFound)
		case IsDecryptionError(err), errors.Is(err, ErrInvalidFormat):
			http.Error(w, "Bad request", http.StatusBadRequest)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}

	return reg
}

// Encoder returns the registry's encoder (used by widgets).
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Logger returns the registry's logger.
func (reg *Registry) Logger() *slog.Logger {
	return reg.log
}

// Mount registers a widget with the registry and returns its handler.
// Panics on a prefix collision.
//
//	reg := hxbs.NewRegistry(key)
//	hxbs.Mount(reg, components.NewCollapse(content))
//	http.Handle("/_c/", reg.Handler())
func Mount[P any](reg *Registry, w Widget[P]) http.Handler {
	c := w.Base()
	c.SetEncoder(reg.encoder)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if other, exists := reg.prefixes[c.prefix]; exists {
		panic(fmt.Sprintf("hxbs: prefix collision for %q (%s)", c.prefix, other))
	}
	reg.prefixes[c.prefix] = c.name

	h := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		serve(reg, w, rw, r)
	})
	reg.mux.Handle(c.prefix+"/", h)
	return h
}

// Handler returns the HTTP handler for widget routes.
// Mount this at "/_c/" in your application.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}
		reg.mux.ServeHTTP(w, r)
	})
}

func (reg *Registry) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	reg.log.Error("widget request failed",
		"widget", name,
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	reg.OnError(w, r, err)
}

// serve decodes props, hydrates, routes to the action handler and writes
// the result.
func serve[P any](reg *Registry, w Widget[P], rw http.ResponseWriter, r *http.Request) {
	c := w.Base()
	action := strings.TrimPrefix(r.URL.Path, c.prefix+"/")

	var def *actionDef[P]
	if action != "" {
		var ok bool
		if def, ok = c.actions[action]; !ok {
			reg.fail(rw, r, c.name, fmt.Errorf("%w %q: %w", ErrUnknownAction, action, ErrNotFound))
			return
		}
		if r.Method != def.method {
			rw.Header().Set("Allow", def.method)
			http.Error(rw, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
	}

	encoded := r.URL.Query().Get("p")
	if encoded == "" && r.Method != http.MethodGet {
		encoded = r.FormValue("p")
	}

	var props P
	if err := c.decodeProps(encoded, &props); err != nil {
		reg.fail(rw, r, c.name, err)
		return
	}

	current := CurrentURL(r)
	if current == "" {
		current = r.URL.Path
	}
	ctx := WithCurrentURL(r.Context(), current)

	if err := w.Hydrate(ctx, &props); err != nil {
		reg.fail(rw, r, c.name, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	result := OK(props)
	if def != nil {
		result = def.handler(ctx, props, r.WithContext(ctx))
	}
	writeResult(reg, w, rw, r.WithContext(ctx), c.name, result)
}

func writeResult[P any](reg *Registry, w Renderer[P], rw http.ResponseWriter, r *http.Request, name string, result Result[P]) {
	if result.ShouldSkip() {
		return
	}

	for k, v := range result.GetHeaders() {
		rw.Header().Set(k, v)
	}
	if trigger := BuildTriggerHeader(result.GetEvents()...); trigger != "" {
		rw.Header().Set("HX-Trigger", trigger)
	}
	if settled := result.GetSettleEvents(); len(settled) > 0 {
		rw.Header().Set("HX-Trigger-After-Settle", strings.Join(settled, ", "))
	}
	if url := result.GetRedirect(); url != "" {
		rw.Header().Set("HX-Redirect", url)
		rw.WriteHeader(http.StatusOK)
		return
	}
	if err := result.GetErr(); err != nil {
		reg.fail(rw, r, name, err)
		return
	}

	var buf bytes.Buffer
	if err := w.Render(r.Context(), result.GetProps()).Render(r.Context(), &buf); err != nil {
		reg.fail(rw, r, name, err)
		return
	}
	buf.WriteString(RenderFlashesOOB(result.GetFlashes()))

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	status := result.GetStatus()
	if status == 0 {
		status = http.StatusOK
	}
	rw.WriteHeader(status)
	_, _ = io.Copy(rw, &buf)
}
