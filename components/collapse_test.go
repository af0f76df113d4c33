package components

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/a-h/templ"
	"github.com/pthm/hxbs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestCollapse(t *testing.T) (*Collapse, http.Handler) {
	t.Helper()
	reg := hxbs.NewRegistry(testKey)
	c := NewCollapse(func(ctx context.Context, id string) (templ.Component, error) {
		if id == "missing" {
			return nil, errors.New("no such panel")
		}
		return templ.Raw(`<p>` + id + ` body</p>`), nil
	})
	hxbs.Mount[CollapseProps](reg, c)
	return c, reg.Handler()
}

// follow issues the request the wrapper schedules on load.
func follow(t *testing.T, h http.Handler, res *hxbs.TestResult) *hxbs.TestResult {
	t.Helper()
	next, err := res.Follow(h)
	require.NoError(t, err, "no follow-up request in %s", res.HTML)
	require.True(t, next.IsOK(), "status %d", next.StatusCode)
	return next
}

func TestCollapseRenderAtRest(t *testing.T) {
	c, _ := newTestCollapse(t)

	tests := []struct {
		name  string
		props CollapseProps
		want  []string
	}{
		{
			name:  "collapsed",
			props: CollapseProps{ID: "faq", Title: "FAQ", Collapsed: true, ContentSize: 120},
			want:  []string{`id="faq-wrap"`, `class="collapse"`, `aria-expanded="false"`, `<p>faq body</p>`},
		},
		{
			name:  "expanded",
			props: CollapseProps{ID: "faq", Title: "FAQ", ContentSize: 120},
			want:  []string{`class="collapse show"`, `aria-expanded="true"`},
		},
		{
			name:  "expanded keeping size",
			props: CollapseProps{ID: "faq", ContentSize: 120, KeepSize: true},
			want:  []string{`class="collapse show"`, `style="height: 120px"`},
		},
		{
			name:  "collapsed keeping size",
			props: CollapseProps{ID: "faq", Collapsed: true, ContentSize: 120, KeepSize: true},
			want:  []string{`class="collapse"`, `style="height: 0px"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := hxbs.TestRender[CollapseProps](c, tt.props)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, res.HTML, want)
			}
			assert.NotContains(t, res.HTML, "hx-get", "resting panel schedules nothing")
		})
	}
}

func TestCollapseRenderOmitsInlineSizeAtRest(t *testing.T) {
	c, _ := newTestCollapse(t)
	res, err := hxbs.TestRender[CollapseProps](c, CollapseProps{ID: "faq", ContentSize: 120})
	require.NoError(t, err)
	assert.NotContains(t, res.HTML, "style=")
}

func TestCollapseShowSequence(t *testing.T) {
	c, h := newTestCollapse(t)
	props := CollapseProps{ID: "faq", Title: "FAQ", Collapsed: true, ContentSize: 120}

	start, err := hxbs.TestPost(h, c.URL("toggle", props), nil)
	require.NoError(t, err)
	require.True(t, start.IsOK())
	assert.True(t, start.HasEvent(EventShow))
	assert.Contains(t, start.HTML, `class="collapsing"`)
	assert.Contains(t, start.HTML, `style="height: 0px"`)
	assert.Contains(t, start.HTML, `hx-trigger="load"`)
	assert.Contains(t, start.HTML, `hx-swap="outerHTML settle:20ms"`)

	grow := follow(t, h, start)
	assert.Empty(t, grow.TriggeredEvents)
	assert.Contains(t, grow.HTML, `class="collapsing"`)
	assert.Contains(t, grow.HTML, `style="height: 120px"`)
	assert.Contains(t, grow.HTML, `hx-trigger="load delay:350ms"`)

	done := follow(t, h, grow)
	assert.True(t, done.HasEvent(EventShown))
	assert.Contains(t, done.HTML, `class="collapse show"`)
	assert.NotContains(t, done.HTML, "style=")
	assert.NotContains(t, done.HTML, "hx-get")
}

func TestCollapseHideSequence(t *testing.T) {
	c, h := newTestCollapse(t)
	props := CollapseProps{ID: "faq", ContentSize: 120, DurationMS: 200}

	start, err := hxbs.TestPost(h, c.URL("hide", props), nil)
	require.NoError(t, err)
	assert.True(t, start.HasEvent(EventHide))
	assert.Contains(t, start.HTML, `style="height: 120px"`)
	assert.Contains(t, start.HTML, `aria-expanded="false"`)

	shrink := follow(t, h, start)
	assert.Contains(t, shrink.HTML, `style="height: 0px"`)
	assert.Contains(t, shrink.HTML, `hx-trigger="load delay:200ms"`)
	for _, step := range []*hxbs.TestResult{start, shrink} {
		assert.Contains(t, step.HTML, `style="--hx-collapse-duration: 200ms"`, "browser transition matches the settle delay")
	}

	done := follow(t, h, shrink)
	assert.True(t, done.HasEvent(EventHidden))
	assert.Contains(t, done.HTML, `class="collapse"`)
	assert.NotContains(t, done.HTML, "style=")
}

func TestCollapseKeepSizeLeavesCollapsedSize(t *testing.T) {
	c, h := newTestCollapse(t)
	props := CollapseProps{ID: "faq", ContentSize: 120, CollapsedSize: 24, KeepSize: true}

	start, err := hxbs.TestPost(h, c.URL("toggle", props), nil)
	require.NoError(t, err)
	done := follow(t, h, follow(t, h, start))

	assert.True(t, done.HasEvent(EventHidden))
	assert.Contains(t, done.HTML, `class="collapse"`)
	assert.Contains(t, done.HTML, `style="height: 24px"`)
}

func TestCollapseWidthAndExplicitSize(t *testing.T) {
	c, h := newTestCollapse(t)
	props := CollapseProps{ID: "side", Collapsed: true, Dimension: "width", ContentSize: 300, ExpandedSize: 240}

	start, err := hxbs.TestPost(h, c.URL("show", props), nil)
	require.NoError(t, err)
	assert.Contains(t, start.HTML, `style="width: 0px"`)

	grow := follow(t, h, start)
	assert.Contains(t, grow.HTML, `style="width: 240px"`)
}

func TestCollapseRepeatedDesiredStateDoesNothing(t *testing.T) {
	c, h := newTestCollapse(t)
	props := CollapseProps{ID: "faq", ContentSize: 120}

	res, err := hxbs.TestPost(h, c.URL("show", props), nil)
	require.NoError(t, err)
	assert.Empty(t, res.TriggeredEvents)
	assert.Contains(t, res.HTML, `class="collapse show"`)
	assert.NotContains(t, res.HTML, "hx-get")
}

func TestCollapseFlipMidTransition(t *testing.T) {
	c, h := newTestCollapse(t)

	// A show whose target size has been rendered, awaiting completion.
	props := CollapseProps{ID: "faq", ContentSize: 120, Step: stepSettle}

	flip, err := hxbs.TestPost(h, c.URL("toggle", props), nil)
	require.NoError(t, err)
	assert.True(t, flip.HasEvent(EventHide))
	assert.Contains(t, flip.HTML, `class="collapsing"`)
	assert.Contains(t, flip.HTML, `hx-trigger="load"`, "the hide restarts at its first step")

	done := follow(t, h, follow(t, h, flip))
	assert.True(t, done.HasEvent(EventHidden))
	assert.False(t, done.HasEvent(EventShown), "the superseded show never completes")
	assert.Contains(t, done.HTML, `class="collapse"`)
}

func TestCollapseStepRequestsOutOfOrder(t *testing.T) {
	c, h := newTestCollapse(t)
	props := CollapseProps{ID: "faq", Collapsed: true, ContentSize: 120}

	for _, action := range []string{"tick", "settle"} {
		res, err := hxbs.TestGet(h, c.URL(action, props))
		require.NoError(t, err)
		assert.Empty(t, res.TriggeredEvents, action)
		assert.Contains(t, res.HTML, `class="collapse"`, action)
	}
}

func TestCollapseErrors(t *testing.T) {
	c, h := newTestCollapse(t)

	t.Run("invalid dimension", func(t *testing.T) {
		props := CollapseProps{ID: "faq", Dimension: "depth"}
		res, err := hxbs.TestPost(h, c.URL("toggle", props), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})

	t.Run("hydration failure", func(t *testing.T) {
		res, err := hxbs.TestGet(h, c.URL("", CollapseProps{ID: "missing"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})

	t.Run("toggle requires POST", func(t *testing.T) {
		res, err := hxbs.TestGet(h, c.URL("toggle", CollapseProps{ID: "faq"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	})
}
