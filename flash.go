package hxbs

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Flash levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// toastDismissMS is how long a toast stays before the page script removes it.
const toastDismissMS = 3000

// Flash is a one-time toast sent with an action response.
type Flash struct {
	Level   string
	Message string
}

// Context returns the Bootstrap contextual class suffix for the level.
// Unknown levels pass through.
func (f Flash) Context() string {
	if f.Level == FlashError {
		return "danger"
	}
	return f.Level
}

func (f Flash) alert() string {
	return fmt.Sprintf(`<div class="alert alert-%s" role="alert" data-level="%s" data-auto-dismiss="%d">%s</div>`,
		html.EscapeString(f.Context()), html.EscapeString(f.Level), toastDismissMS, html.EscapeString(f.Message))
}

// RenderFlashesOOB renders flashes as alerts appended out-of-band to the
// ToastContainer. It returns "" for no flashes.
func RenderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}
	alerts := make([]string, len(flashes))
	for i, f := range flashes {
		alerts[i] = f.alert()
	}
	return `<div id="toasts" hx-swap-oob="beforeend">` + strings.Join(alerts, "") + `</div>`
}

// ToastContainer is the target for flashes. Place it once in the layout.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="toasts" class="toast-container"></div>`)
		return err
	})
}
