package hxbs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/a-h/templ"
)

// Handler handles a named widget action. It receives hydrated props and
// returns the Result to render.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component[P] is the framework half of a widget: named actions, sealed
// props, and the URLs and hx-* attributes that reach them. Widgets embed it
// and supply Hydrate and Render:
//
//	type Collapse struct {
//	    *hxbs.Component[CollapseProps]
//	}
//
//	func NewCollapse() *Collapse {
//	    c := &Collapse{Component: hxbs.New[CollapseProps]("collapse")}
//	    c.Action("toggle", c.handleToggle)
//	    return c
//	}
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *Encoder
}

// New returns a widget base named name. Its URL prefix is stable across
// restarts: it hashes the name with the file and line that called New,
// so two constructors sharing a name still get separate routes.
//
// Props are signed; Sensitive switches to encryption.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  instancePrefix(name, 2),
		actions: map[string]*actionDef[P]{},
	}
}

// Sensitive encrypts props instead of signing them, for widgets whose
// state must not be readable in the page.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

func (c *Component[P]) Name() string      { return c.name }
func (c *Component[P]) IsSensitive() bool { return c.sensitive }

// Prefix is the path every action of the widget lives under.
func (c *Component[P]) Prefix() string { return c.prefix }

// Base returns the embedded component. Mount uses it to reach the
// framework half of a widget.
func (c *Component[P]) Base() *Component[P] { return c }

// Action registers a named action handler with default POST method.
//
// Actions use semantic names that describe intent (toggle, select, click)
// rather than HTTP methods:
//
//	c.Action("toggle", c.handleToggle)
//	c.Action("settle", c.handleSettle).Method(http.MethodGet)
//
// The registry calls Hydrate before the handler and Render after it
// returns OK or Err.
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{
		name:    name,
		method:  http.MethodPost,
		handler: handler,
	}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// HasAction reports whether name is registered.
func (c *Component[P]) HasAction(name string) bool {
	_, ok := c.actions[name]
	return ok
}

// SetEncoder seals the widget's props with enc, scoped to its prefix.
// Mount calls it.
func (c *Component[P]) SetEncoder(enc *Encoder) {
	c.encoder = enc.For(c.prefix)
}

func (c *Component[P]) Encoder() *Encoder { return c.encoder }

// Wire returns the HTMX attributes that invoke action with props.
// An empty action is the default render (GET).
//
//	<button { c.Wire("toggle", props)... }>Toggle</button>
func (c *Component[P]) Wire(action string, props P) templ.Attributes {
	method := http.MethodGet
	if def, ok := c.actions[action]; ok {
		method = def.method
	}
	path, encoded := c.buildActionURL(action, props)
	return WireAttrs(path, method, encoded)
}

// Refresh returns attributes for the default render (GET).
func (c *Component[P]) Refresh(props P) templ.Attributes {
	return c.Wire("", props)
}

// URL returns the action URL with props in the query string. The registry
// accepts query-string props for every method, which makes URL the
// simplest way to address an action from tests and redirects.
func (c *Component[P]) URL(action string, props P) string {
	path, encoded := c.buildActionURL(action, props)
	if encoded == "" {
		return path
	}
	return path + "?p=" + encoded
}

// buildActionURL returns the action path and the encoded props.
func (c *Component[P]) buildActionURL(action string, props P) (string, string) {
	path := c.prefix + "/" + action
	if c.encoder == nil {
		return path, ""
	}
	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return path, ""
	}
	return path, encoded
}

// decodeProps opens props sealed by buildActionURL.
func (c *Component[P]) decodeProps(encoded string, props *P) error {
	if encoded == "" {
		return nil
	}
	if c.encoder == nil {
		return fmt.Errorf("%w: %s has no encoder", ErrInvalidFormat, c.name)
	}
	return wrapEncodingError(c.encoder.Decode(encoded, c.sensitive, props))
}

// instancePrefix builds "/_c/<name>-<hash>" from name and the caller skip
// frames above it.
func instancePrefix(name string, skip int) string {
	site := name
	if _, file, line, ok := runtime.Caller(skip); ok {
		site = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	sum := sha256.Sum256([]byte(site))
	return "/_c/" + name + "-" + hex.EncodeToString(sum[:4])
}
