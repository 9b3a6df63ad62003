// cmd/serve.go

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/soyuz43/jsast-go/internal/config"
	"github.com/soyuz43/jsast-go/internal/server"
)

// ServeCmd is the Cobra command to start the API server
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP endpoint for editor integrations.",
	Long: `Serves POST /parse, GET /backends and GET /healthz. The chosen port is written to
serve.port in the config directory and removed on shutdown. The server stops on
interrupt or after the inactivity timeout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.initLogging(os.Stderr); err != nil {
			return err
		}
		parser, err := current.selectParser()
		if err != nil {
			return err
		}

		stateDir, err := config.Dir()
		if err != nil {
			current.log("server").WithError(err).Warn("Port file disabled")
			stateDir = ""
		}

		cfg := current.cfg.Serve
		srv := server.New(parser, current.cfg.ParserOptions(), current.log("server"))
		return srv.Run(cmd.Context(), server.Config{
			Host:              cfg.Host,
			Port:              cfg.Port,
			InactivityTimeout: cfg.InactivityTimeout,
			StateDir:          stateDir,
		})
	},
}

func init() {
	defaults := config.DefaultConfig().Serve
	flags := ServeCmd.Flags()
	flags.String("host", defaults.Host, "interface to listen on")
	flags.Int("port", defaults.Port, "port to listen on (0 picks a free port)")
	flags.Duration("inactivity-timeout", defaults.InactivityTimeout, "stop after this long without requests (0 never stops)")
	rootCmd.AddCommand(ServeCmd)
}
