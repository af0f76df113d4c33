package cli

import (
	"github.com/pthm/hxbs/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper, load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget showcase",
		Long: `Serve the showcase page with its collapse panels, nav and buttons.

Examples:
  hxbs serve
  hxbs serve --addr 127.0.0.1:9000 --duration 600ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.Debug)
			if cfg.Key == "" {
				log.Warn("no key configured, using the development key")
			}
			return server.New(cfg, log).Run(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().String("dimension", "", "collapse dimension (height or width)")
	bindFlag(v, "addr", cmd.Flags().Lookup("addr"))
	bindFlag(v, "collapse.dimension", cmd.Flags().Lookup("dimension"))
	return cmd
}
