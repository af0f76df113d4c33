package hxbs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

type testProps struct {
	Name    string `msgpack:"n"`
	Current string `msgpack:"-"`
}

func okHandler(ctx context.Context, props testProps, r *http.Request) Result[testProps] {
	return OK(props)
}

func testEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	return enc
}

// echoWidget renders its props and the page URL it was hydrated with.
type echoWidget struct {
	*Component[testProps]
	hydrateErr error
}

func newEchoWidget() *echoWidget {
	w := &echoWidget{Component: New[testProps]("echo")}
	w.Action("rename", func(ctx context.Context, props testProps, r *http.Request) Result[testProps] {
		props.Name = r.FormValue("name")
		return OK(props).Trigger("renamed", map[string]any{"name": props.Name}).Flash(FlashSuccess, "Renamed")
	})
	w.Action("fail", func(ctx context.Context, props testProps, r *http.Request) Result[testProps] {
		return Err(props, ErrNotFound)
	})
	w.Action("skip", func(ctx context.Context, props testProps, r *http.Request) Result[testProps] {
		return Skip[testProps]()
	})
	w.Action("away", func(ctx context.Context, props testProps, r *http.Request) Result[testProps] {
		return Redirect[testProps]("/away")
	})
	w.Action("create", func(ctx context.Context, props testProps, r *http.Request) Result[testProps] {
		return OK(props).Status(http.StatusCreated).Header("X-Name", props.Name)
	})
	w.Action("peek", okHandler).Method(http.MethodGet)
	return w
}

func (w *echoWidget) Hydrate(ctx context.Context, props *testProps) error {
	props.Current = CurrentURLFrom(ctx)
	return w.hydrateErr
}

func (w *echoWidget) Render(ctx context.Context, props testProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		_, err := io.WriteString(out, `<p data-current="`+templ.EscapeString(props.Current)+`">`+templ.EscapeString(props.Name)+`</p>`)
		return err
	})
}

func newTestRegistry(t *testing.T) (*Registry, *echoWidget) {
	t.Helper()
	reg := NewRegistry([]byte("0123456789abcdef0123456789abcdef"))
	w := newEchoWidget()
	Mount[testProps](reg, w)
	return reg, w
}

func TestRegistryDispatch(t *testing.T) {
	reg, w := newTestRegistry(t)
	h := reg.Handler()
	props := testProps{Name: "before"}

	tests := []struct {
		name       string
		method     string
		url        string
		form       map[string]string
		wantStatus int
		check      func(t *testing.T, res *TestResult)
	}{
		{
			name:       "default render",
			method:     http.MethodGet,
			url:        w.URL("", props),
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res *TestResult) {
				if !res.HTMLContains(">before</p>") {
					t.Errorf("HTML = %s", res.HTML)
				}
			},
		},
		{
			name:       "action with trigger and flash",
			method:     http.MethodPost,
			url:        w.URL("rename", props),
			form:       map[string]string{"name": "after"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res *TestResult) {
				if !res.HTMLContains(">after</p>") {
					t.Errorf("HTML = %s", res.HTML)
				}
				if !res.HasEvent("renamed") {
					t.Errorf("events = %v", res.TriggeredEvents)
				}
				if !res.HasFlash(FlashSuccess, "Renamed") {
					t.Errorf("flashes = %v", res.Flashes)
				}
			},
		},
		{
			name:       "props in form body",
			method:     http.MethodPost,
			url:        w.Prefix() + "/rename",
			form:       map[string]string{"p": w.URL("", props)[len(w.Prefix()+"/?p="):], "name": "form"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res *TestResult) {
				if !res.HTMLContains(">form</p>") {
					t.Errorf("HTML = %s", res.HTML)
				}
			},
		},
		{
			name:       "status and headers",
			method:     http.MethodPost,
			url:        w.URL("create", props),
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, res *TestResult) {
				if res.Headers.Get("X-Name") != "before" {
					t.Errorf("X-Name = %q", res.Headers.Get("X-Name"))
				}
			},
		},
		{
			name:       "redirect",
			method:     http.MethodPost,
			url:        w.URL("away", props),
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res *TestResult) {
				if res.RedirectURL != "/away" || res.HTML != "" {
					t.Errorf("redirect = %q, HTML = %q", res.RedirectURL, res.HTML)
				}
			},
		},
		{
			name:       "skip writes nothing",
			method:     http.MethodPost,
			url:        w.URL("skip", props),
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res *TestResult) {
				if res.HTML != "" {
					t.Errorf("HTML = %q", res.HTML)
				}
			},
		},
		{name: "handler error", method: http.MethodPost, url: w.URL("fail", props), wantStatus: http.StatusNotFound},
		{name: "unknown action", method: http.MethodPost, url: w.URL("missing", props), wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPost, url: w.URL("peek", props), wantStatus: http.StatusMethodNotAllowed},
		{name: "tampered props", method: http.MethodGet, url: w.Prefix() + "/?p=AAAA.BBBB", wantStatus: http.StatusBadRequest},
		{name: "malformed props", method: http.MethodGet, url: w.Prefix() + "/?p=nodot", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := TestAction(h, tt.url, tt.method, tt.form)
			if err != nil {
				t.Fatalf("TestAction() error = %v", err)
			}
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d (%s)", res.StatusCode, tt.wantStatus, res.HTML)
			}
			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestRegistryCSRFGuard(t *testing.T) {
	reg, w := newTestRegistry(t)

	res, err := NewTestRequest(http.MethodPost, w.URL("rename", testProps{})).
		WithHeader("HX-Request", "").
		Execute(reg.Handler())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want %d", res.StatusCode, http.StatusForbidden)
	}

	// GET renders stay reachable without HTMX.
	res, err = NewTestRequest(http.MethodGet, w.URL("", testProps{Name: "x"})).
		WithHeader("HX-Request", "").
		Execute(reg.Handler())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsOK() {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
}

func TestRegistryCurrentURL(t *testing.T) {
	reg, w := newTestRegistry(t)
	h := reg.Handler()

	res, err := NewTestRequest(http.MethodGet, w.URL("", testProps{})).
		WithHeader("HX-Current-URL", "https://example.com/docs").
		Execute(h)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.HTMLContains(`data-current="https://example.com/docs"`) {
		t.Errorf("HTML = %s", res.HTML)
	}

	res, err = TestGet(h, w.URL("peek", testProps{}))
	if err != nil {
		t.Fatalf("TestGet() error = %v", err)
	}
	if !res.HTMLContains(`data-current="` + w.Prefix() + `/peek"`) {
		t.Errorf("without HX-Current-URL the request path is used: %s", res.HTML)
	}
}

func TestRegistryHydrationError(t *testing.T) {
	reg, w := newTestRegistry(t)
	w.hydrateErr = errors.New("store down")

	var got error
	reg.OnError = func(rw http.ResponseWriter, r *http.Request, err error) {
		got = err
		http.Error(rw, "custom", http.StatusServiceUnavailable)
	}

	res, err := TestGet(reg.Handler(), w.URL("", testProps{}))
	if err != nil {
		t.Fatalf("TestGet() error = %v", err)
	}
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want custom OnError status", res.StatusCode)
	}
	if !errors.Is(got, ErrHydrationFailed) || !strings.Contains(got.Error(), "store down") {
		t.Errorf("OnError got %v", got)
	}
}

func TestMountPrefixCollision(t *testing.T) {
	reg := NewRegistry([]byte("key"))
	w := newEchoWidget()
	Mount[testProps](reg, w)

	defer func() {
		if r := recover(); r == nil {
			t.Error("mounting the same widget twice should panic")
		}
	}()
	Mount[testProps](reg, w)
}

func TestRegistryPropsScopedToWidget(t *testing.T) {
	reg, w := newTestRegistry(t)
	other := &echoWidget{Component: New[testProps]("mirror")}
	other.Action("peek", okHandler).Method(http.MethodGet)
	Mount[testProps](reg, other)

	own := w.URL("peek", testProps{Name: "faq"})
	query := own[strings.Index(own, "?"):]

	res, err := TestGet(reg.Handler(), own)
	if err != nil || !res.IsOK() || !res.HTMLContains(">faq<") {
		t.Fatalf("own widget: %v %+v", err, res)
	}

	res, err = TestGet(reg.Handler(), other.Prefix()+"/peek"+query)
	if err != nil {
		t.Fatalf("TestGet() error = %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("replayed props: status %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}
