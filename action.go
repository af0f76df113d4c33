package hxbs

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// ActionBuilder is returned by Component.Action. Actions are POST unless
// Method says otherwise; GET actions suit requests a swap fires by itself,
// such as the collapse tick:
//
//	c.Action("tick", c.handleTick).Method(http.MethodGet)
type ActionBuilder struct {
	method *string
}

// Method sets the action's HTTP method.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

var hxVerbs = map[string]string{
	http.MethodPost:   "hx-post",
	http.MethodPut:    "hx-put",
	http.MethodPatch:  "hx-patch",
	http.MethodDelete: "hx-delete",
}

// WireAttrs returns the request attribute for path and method together with
// the sealed props. A GET carries them as ?p= on the URL, any other method
// in hx-vals. Target and swap belong to the widget's markup.
func WireAttrs(path, method, encoded string) templ.Attributes {
	verb, ok := hxVerbs[method]
	if !ok {
		if encoded != "" {
			path += "?p=" + encoded
		}
		return templ.Attributes{"hx-get": path}
	}

	attrs := templ.Attributes{verb: path}
	if encoded != "" {
		vals, _ := json.Marshal(struct {
			P string `json:"p"`
		}{encoded})
		attrs["hx-vals"] = string(vals)
	}
	return attrs
}
