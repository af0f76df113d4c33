package hxbs

// Event is a client event announced through an HX-Trigger header.
// Data, when set, becomes evt.detail in the browser.
type Event struct {
	Name string
	Data map[string]any
}

// Result[P] tells the registry what to do once an action handler returns:
// which props to render with and which headers, events and toasts go out
// alongside the markup.
//
// Builders return a modified copy, so results chain:
//
//	return hxbs.OK(props).
//	    Trigger("hide.bs.collapse", map[string]any{"id": props.ID}).
//	    Flash(hxbs.FlashInfo, "Panel closed")
//
// An Err result skips rendering and goes to the registry's OnError.
type Result[P any] struct {
	props    P
	err      error
	skip     bool
	redirect string
	status   int
	headers  map[string]string
	flashes  []Flash
	events   []Event
	settled  []string
}

// OK renders the widget with props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err hands err to OnError instead of rendering.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip is for handlers that wrote the response themselves.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Redirect sends the browser to url through HX-Redirect. Nothing is rendered.
func Redirect[P any](url string) Result[P] {
	return Result[P]{redirect: url}
}

// Flash queues a toast, rendered out-of-band into ToastContainer.
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes[:len(r.flashes):len(r.flashes)], Flash{Level: level, Message: message})
	return r
}

// Trigger announces a client event. Events keep the order they were added
// in. Triggering a name a second time replaces its data.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	var d map[string]any
	if len(data) > 0 {
		d = data[0]
	}
	events := make([]Event, 0, len(r.events)+1)
	replaced := false
	for _, e := range r.events {
		if e.Name == event {
			e.Data = d
			replaced = true
		}
		events = append(events, e)
	}
	if !replaced {
		events = append(events, Event{Name: event, Data: d})
	}
	r.events = events
	return r
}

// TriggerAfterSettle announces an event through HX-Trigger-After-Settle,
// once the swapped markup has settled.
func (r Result[P]) TriggerAfterSettle(event string) Result[P] {
	r.settled = append(r.settled[:len(r.settled):len(r.settled)], event)
	return r
}

// PushURL sets HX-Push-Url.
func (r Result[P]) PushURL(url string) Result[P] {
	return r.Header("HX-Push-Url", url)
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status overrides the response status. Zero keeps 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

func (r Result[P]) GetProps() P                   { return r.props }
func (r Result[P]) GetErr() error                 { return r.err }
func (r Result[P]) ShouldSkip() bool              { return r.skip }
func (r Result[P]) GetRedirect() string           { return r.redirect }
func (r Result[P]) GetStatus() int                { return r.status }
func (r Result[P]) GetHeaders() map[string]string { return r.headers }
func (r Result[P]) GetFlashes() []Flash           { return r.flashes }

// GetEvents returns the HX-Trigger events in order.
func (r Result[P]) GetEvents() []Event { return r.events }

// GetSettleEvents returns the HX-Trigger-After-Settle event names.
func (r Result[P]) GetSettleEvents() []string { return r.settled }
