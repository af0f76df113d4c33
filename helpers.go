package hxbs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Render writes a page that hosts widgets, rendering it with the request
// context.
func Render(w http.ResponseWriter, r *http.Request, page templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return page.Render(r.Context(), w)
}

// Embed renders a widget inline in a page: it hydrates props, then renders
// them. Widgets placed this way issue their later requests to the registry.
//
//	templ.Join(header(), hxbs.Embed[components.NavProps](w.Nav, navProps))
func Embed[P any](w Widget[P], props P) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if err := w.Hydrate(ctx, &props); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrHydrationFailed, w.Base().Name(), err)
		}
		return w.Render(ctx, props).Render(ctx, out)
	})
}

// Request headers HTMX sends with every request it issues.
const (
	headerRequest    = "HX-Request"
	headerBoosted    = "HX-Boosted"
	headerCurrentURL = "HX-Current-URL"
	headerTrigger    = "HX-Trigger"
	headerTarget     = "HX-Target"
)

// IsHTMX reports whether HTMX issued r. The registry requires it on
// mutating methods.
func IsHTMX(r *http.Request) bool { return r.Header.Get(headerRequest) == "true" }

// IsBoosted reports whether r is an hx-boost navigation.
func IsBoosted(r *http.Request) bool { return r.Header.Get(headerBoosted) == "true" }

// CurrentURL is the page the browser is on, not the request URL. Nav
// items compare their href against it. Empty outside HTMX.
func CurrentURL(r *http.Request) string { return r.Header.Get(headerCurrentURL) }

// TriggerID is the id of the element that fired the request, such as a
// collapse toggler.
func TriggerID(r *http.Request) string { return r.Header.Get(headerTrigger) }

// TargetID is the id of the element the response will be swapped into.
func TargetID(r *http.Request) string { return r.Header.Get(headerTarget) }

type currentURLKey struct{}

// WithCurrentURL returns a context carrying the page URL the browser is on.
// The registry sets it before Hydrate.
func WithCurrentURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, currentURLKey{}, url)
}

// CurrentURLFrom returns the page URL stored by WithCurrentURL.
func CurrentURLFrom(ctx context.Context) string {
	url, _ := ctx.Value(currentURLKey{}).(string)
	return url
}

// BuildTriggerHeader builds an HX-Trigger header value.
//
// Events without data are joined as a comma-separated list of names.
// Once any event carries data, the value is a JSON object keyed by event
// name in the order given, and HTMX exposes each value as evt.detail.
func BuildTriggerHeader(events ...Event) string {
	if len(events) == 0 {
		return ""
	}
	withData := false
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
		withData = withData || e.Data != nil
	}
	if !withData {
		return strings.Join(names, ", ")
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range events {
		key, err := json.Marshal(e.Name)
		if err != nil {
			return strings.Join(names, ", ")
		}
		val := []byte("null")
		if e.Data != nil {
			if val, err = json.Marshal(e.Data); err != nil {
				return strings.Join(names, ", ")
			}
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.String()
}
