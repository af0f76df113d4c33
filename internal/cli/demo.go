package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pthm/hxbs/tui"
	"github.com/spf13/cobra"
)

var demoSections = []tui.Section{
	{
		Title: "What is a collapse?",
		Lines: []string{
			"A panel that shows and hides its content",
			"by animating its height between two sizes.",
		},
	},
	{
		Title: "How does it animate?",
		Lines: []string{
			"Show pins the height at the collapsed size,",
			"then sets it to the content height on the next tick.",
			"When the transition ends the inline height is cleared.",
		},
		Collapsed: true,
	},
	{
		Title: "What if I toggle mid-flight?",
		Lines: []string{
			"The new transition starts from the current height.",
			"Callbacks of the superseded one are ignored.",
		},
		Collapsed: true,
	},
}

func newDemoCmd(load loader) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Animate collapse panels in the terminal",
		Long: `Show an accordion of collapse panels in the terminal.

Keys: j/k move, enter toggles, o opens all, c collapses all, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			// The alternate screen owns the terminal, so logs go to a file
			// or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := openLog(logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			return tui.Run(cmd.Context(), demoSections, tui.Options{
				Duration: cfg.Collapse.Duration,
				KeepSize: !cfg.Collapse.ResetSize,
				Logger:   newLogger(w, cfg.Debug),
			})
		},
	}
	cmd.Flags().StringVar(&logFile, "log", "", "write logs to this file")
	return cmd
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
