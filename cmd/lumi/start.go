package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/strandworks/lumibot/pkg/log"
	"github.com/strandworks/lumibot/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the LumiBot services",
	Long:  `Initializes the contact store, loads the content catalog and starts the Telegram transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting lumibot")

		// Define services using the setup.go logic
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("lumibot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
