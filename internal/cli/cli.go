package cli

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/i474232898/iss-finder/internal/app"
	"github.com/i474232898/iss-finder/internal/config"
	"github.com/i474232898/iss-finder/internal/logging"
	"github.com/i474232898/iss-finder/internal/sky"
)

const appName = "issfinder"

// New builds the root command. Running it without a subcommand serves HTTP.
func New() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           appName,
		Short:         "Tells you whether it is worth going outside to spot the ISS",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional YAML config file")

	serve := newServeCmd(&configPath)
	root.AddCommand(serve, newStatusCmd(&configPath))
	root.RunE = serve.RunE

	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := logging.New(os.Stdout, cfg, appName)

			if addr == "" {
				addr = ":" + cfg.Port
			}

			srv, err := app.NewServer(cfg, logger, os.Stdout)
			if err != nil {
				return err
			}

			// Graceful shutdown on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Serve(ctx, srv, addr, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :$PORT)")

	return cmd
}

func newStatusCmd(configPath *string) *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch the current overview once and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg, appName)

			svc := app.NewService(cfg, logger)
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
				loc := svc.Viewer()
				if cmd.Flags().Changed("lat") {
					loc.Latitude = lat
				}
				if cmd.Flags().Changed("lon") {
					loc.Longitude = lon
				}
				svc.UpdateLocation(loc)
			}

			ov, err := svc.Overview(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, ov)
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "viewer latitude (defaults to the configured location)")
	cmd.Flags().Float64Var(&lon, "lon", 0, "viewer longitude (defaults to the configured location)")

	return cmd
}

func printJSON(cmd *cobra.Command, ov sky.Overview) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ov)
}
