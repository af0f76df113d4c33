package hxbs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
)

// TestResult is a rendered widget or a recorded action response.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header

	// Parsed from the response headers and markup.
	TriggeredEvents []string
	SettleEvents    []string
	Flashes         []Flash
	RedirectURL     string
	PushedURL       string
}

// TestableComponent is what TestRender needs from a widget.
type TestableComponent[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// TestRender hydrates and renders a widget without going through HTTP.
//
//	res, err := hxbs.TestRender[CollapseProps](collapse, props)
//	if !res.HTMLContains(`class="collapse show"`) { ... }
func TestRender[P any](comp TestableComponent[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with ctx, e.g. one carrying
// WithCurrentURL for nav items.
func TestRenderWithContext[P any](ctx context.Context, comp TestableComponent[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{HTML: buf.String(), StatusCode: http.StatusOK, Headers: http.Header{}}, nil
}

// TestAction sends an HTMX request to h, usually a Registry handler.
//
//	res, err := hxbs.TestAction(reg.Handler(), c.URL("toggle", props), http.MethodPost, nil)
func TestAction(h http.Handler, target, method string, form map[string]string) (*TestResult, error) {
	return NewTestRequest(method, target).WithFormValues(form).Execute(h)
}

// TestGet sends an HTMX GET.
func TestGet(h http.Handler, target string) (*TestResult, error) {
	return TestAction(h, target, http.MethodGet, nil)
}

// TestPost sends an HTMX POST.
func TestPost(h http.Handler, target string, form map[string]string) (*TestResult, error) {
	return TestAction(h, target, http.MethodPost, form)
}

// ErrNoFollowUp is returned by Follow when the markup schedules no request.
var ErrNoFollowUp = errors.New("hxbs: markup schedules no follow-up request")

var hxGet = regexp.MustCompile(`hx-get="([^"]*)"`)

// Follow sends the GET that the first hx-get in the markup points at, the
// way the browser does when its hx-trigger is load. A transitioning
// collapse settles after two follows.
func (r *TestResult) Follow(h http.Handler) (*TestResult, error) {
	m := hxGet.FindStringSubmatch(r.HTML)
	if m == nil {
		return nil, ErrNoFollowUp
	}
	return TestGet(h, html.UnescapeString(m[1]))
}

func (r *TestResult) HTMLContains(s string) bool { return strings.Contains(r.HTML, s) }

// HTMLContainsAll reports whether every s is in the markup.
func (r *TestResult) HTMLContainsAll(s ...string) bool {
	for _, x := range s {
		if !r.HTMLContains(x) {
			return false
		}
	}
	return true
}

// HasEvent reports whether HX-Trigger named event.
func (r *TestResult) HasEvent(event string) bool {
	return contains(r.TriggeredEvents, event)
}

// HasFlash reports whether a toast with level and message was rendered.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f == (Flash{Level: level, Message: message}) {
			return true
		}
	}
	return false
}

func (r *TestResult) IsOK() bool          { return r.StatusCode == http.StatusOK }
func (r *TestResult) WasRedirected() bool { return r.RedirectURL != "" }

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// parseTriggerHeader extracts event names, in header order, from an
// HX-Trigger value holding either a list of names or a JSON object.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if !strings.HasPrefix(trigger, "{") {
		var events []string
		for _, e := range strings.Split(trigger, ",") {
			if e = strings.TrimSpace(e); e != "" {
				events = append(events, e)
			}
		}
		return events
	}

	dec := json.NewDecoder(strings.NewReader(trigger))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var events []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return events
		}
		var detail json.RawMessage
		if err := dec.Decode(&detail); err != nil {
			return events
		}
		name, _ := tok.(string)
		events = append(events, name)
	}
	return events
}

var flashPattern = regexp.MustCompile(`<div class="alert alert-[a-z]+" role="alert" data-level="([a-z]+)"[^>]*>([^<]*)</div>`)

// parseFlashesFromHTML finds toasts rendered by RenderFlashesOOB.
func parseFlashesFromHTML(markup string) []Flash {
	var flashes []Flash
	for _, m := range flashPattern.FindAllStringSubmatch(markup, -1) {
		flashes = append(flashes, Flash{Level: m[1], Message: html.UnescapeString(m[2])})
	}
	return flashes
}

// TestRequestBuilder builds an HTMX request for Execute. The HX-Request
// header is preset so mutating methods pass the CSRF guard.
type TestRequestBuilder struct {
	method string
	target string
	form   url.Values
	header http.Header
	ctx    context.Context
}

// NewTestRequest starts a request for method and target.
func NewTestRequest(method, target string) *TestRequestBuilder {
	header := http.Header{}
	header.Set("HX-Request", "true")
	return &TestRequestBuilder{method: method, target: target, form: url.Values{}, header: header}
}

// WithFormValues adds form fields to the body.
func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.form.Set(k, v)
	}
	return b
}

// WithHeader sets a request header. An empty value removes it, which
// turns the request into a plain browser request.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	if value == "" {
		b.header.Del(key)
		return b
	}
	b.header.Set(key, value)
	return b
}

func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute sends the request through h and parses the response.
func (b *TestRequestBuilder) Execute(h http.Handler) (*TestResult, error) {
	req := httptest.NewRequest(b.method, b.target, strings.NewReader(b.form.Encode()))
	if b.ctx != nil {
		req = req.WithContext(b.ctx)
	}
	for k, v := range b.header {
		req.Header[k] = v
	}
	if len(b.form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return record(rec), nil
}

func record(rec *httptest.ResponseRecorder) *TestResult {
	hdr := rec.Header()
	res := &TestResult{
		HTML:            rec.Body.String(),
		StatusCode:      rec.Code,
		Headers:         hdr,
		TriggeredEvents: parseTriggerHeader(hdr.Get("HX-Trigger")),
		SettleEvents:    parseTriggerHeader(hdr.Get("HX-Trigger-After-Settle")),
		RedirectURL:     hdr.Get("HX-Redirect"),
		PushedURL:       hdr.Get("HX-Push-Url"),
	}
	res.Flashes = parseFlashesFromHTML(res.HTML)
	return res
}
