package hxbs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestRequestHeaders(t *testing.T) {
	tests := []struct {
		header string
		value  string
		read   func(*http.Request) any
		want   any
	}{
		{"HX-Request", "true", func(r *http.Request) any { return IsHTMX(r) }, true},
		{"HX-Request", "yes", func(r *http.Request) any { return IsHTMX(r) }, false},
		{"HX-Request", "", func(r *http.Request) any { return IsHTMX(r) }, false},
		{"HX-Boosted", "true", func(r *http.Request) any { return IsBoosted(r) }, true},
		{"HX-Boosted", "false", func(r *http.Request) any { return IsBoosted(r) }, false},
		{"HX-Current-URL", "http://localhost/panels/faq", func(r *http.Request) any { return CurrentURL(r) }, "http://localhost/panels/faq"},
		{"HX-Current-URL", "", func(r *http.Request) any { return CurrentURL(r) }, ""},
		{"HX-Trigger", "faq-toggler", func(r *http.Request) any { return TriggerID(r) }, "faq-toggler"},
		{"HX-Target", "faq", func(r *http.Request) any { return TargetID(r) }, "faq"},
		{"HX-Target", "", func(r *http.Request) any { return TargetID(r) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.header+"="+tt.value, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.value != "" {
				req.Header.Set(tt.header, tt.value)
			}
			if got := tt.read(req); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderHelper(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if err := Render(rec, req, templ.Raw(`<div class="collapse show"></div>`)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != `<div class="collapse show"></div>` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestCurrentURLContext(t *testing.T) {
	if got := CurrentURLFrom(context.Background()); got != "" {
		t.Errorf("CurrentURLFrom(empty) = %q, want empty", got)
	}
	ctx := WithCurrentURL(context.Background(), "/users/7")
	if got := CurrentURLFrom(ctx); got != "/users/7" {
		t.Errorf("CurrentURLFrom() = %q, want %q", got, "/users/7")
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		expect string
	}{
		{name: "none", expect: ""},
		{
			name:   "bare name",
			events: []Event{{Name: "nav:select"}},
			expect: "nav:select",
		},
		{
			name:   "names only",
			events: []Event{{Name: "hide.bs.collapse"}, {Name: "hidden.bs.collapse"}},
			expect: "hide.bs.collapse, hidden.bs.collapse",
		},
		{
			name:   "detail",
			events: []Event{{Name: "shown.bs.collapse", Data: map[string]any{"id": "faq", "step": 2}}},
			expect: `{"shown.bs.collapse":{"id":"faq","step":2}}`,
		},
		{
			name: "order kept and null detail",
			events: []Event{
				{Name: "show.bs.collapse", Data: map[string]any{"id": "faq"}},
				{Name: "button:click"},
			},
			expect: `{"show.bs.collapse":{"id":"faq"},"button:click":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildTriggerHeader(tt.events...); got != tt.expect {
				t.Errorf("BuildTriggerHeader() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestEmbed(t *testing.T) {
	w := newEchoWidget()
	ctx := WithCurrentURL(context.Background(), "/page")

	var sb strings.Builder
	if err := Embed[testProps](w, testProps{Name: "inline"}).Render(ctx, &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := sb.String(); got != `<p data-current="/page">inline</p>` {
		t.Errorf("Embed rendered %q", got)
	}

	w.hydrateErr = errors.New("gone")
	err := Embed[testProps](w, testProps{}).Render(ctx, &sb)
	if !errors.Is(err, ErrHydrationFailed) {
		t.Errorf("error = %v, want ErrHydrationFailed", err)
	}
}
