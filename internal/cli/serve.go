package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/citizen-portal/internal/httpserver"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := Bootstrap(ctx, rootOpts.Config, rootOpts.Logger)
			if err != nil {
				return err
			}
			defer app.Close()

			if !skipMigrate {
				if err := app.Prepare(ctx); err != nil {
					return err
				}
			}

			addr := fmt.Sprintf(":%d", rootOpts.Config.Port)
			rootOpts.Logger.Info("citizen portal ready", zap.String("addr", addr), zap.String("env", rootOpts.Config.Env))
			return httpserver.Run(ctx, httpserver.New(addr, app.Router()), rootOpts.Logger)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply the schema or seed the default admin on startup")
	return cmd
}
