// Package cli implements the hxbs command.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pthm/hxbs/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo records build metadata for the version command.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

// NewRootCmd builds the command tree. Each call returns a fresh tree bound
// to its own viper instance.
func NewRootCmd() *cobra.Command {
	v := config.New()
	var configPath string

	root := &cobra.Command{
		Use:   "hxbs",
		Short: "Server-rendered Bootstrap widgets for htmx",
		Long: `hxbs serves Bootstrap collapse panels, navs and stateful buttons
rendered on the server and animated through htmx.

Examples:
  hxbs serve --addr :3000
  hxbs demo --duration 1s
  HXBS_COLLAPSE_DURATION=1s hxbs serve`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./hxbs.yaml)")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.PersistentFlags().Duration("duration", 0, "collapse transition duration")
	bindFlag(v, "debug", root.PersistentFlags().Lookup("debug"))
	bindFlag(v, "collapse.duration", root.PersistentFlags().Lookup("duration"))

	load := func() (*config.Config, error) {
		return config.Load(v, configPath)
	}

	root.AddCommand(
		newServeCmd(v, load),
		newDemoCmd(load),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newLogger builds the process logger.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type loader func() (*config.Config, error)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hxbs %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// bindFlag ties a flag to a config key. A nil flag is a typo in the flag
// name and panics.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}
