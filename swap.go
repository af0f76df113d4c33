package hxbs

import "strconv"

// SwapMode defines HTMX swap strategies for how response HTML replaces the target.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag (outerHTML).
	// Widgets re-render themselves with it.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents (innerHTML).
	SwapInner SwapMode = "innerHTML"

	// SwapNone discards the response. Used for actions that only emit events.
	SwapNone SwapMode = "none"
)

// Settle returns the swap mode with an explicit settle delay, e.g.
// "outerHTML settle:20ms". HTMX copies old attributes onto the new element
// and applies the new ones after the delay, which lets a CSS transition
// run between the two inline sizes.
func (m SwapMode) Settle(ms int) string {
	return string(m) + " settle:" + strconv.Itoa(ms) + "ms"
}
