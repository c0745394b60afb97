package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the advisory services",
	Long:  `Initializes storage, the model provider and the configured transports (CLI, Telegram), then serves farmer conversations until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting agritech advisor")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("agritech advisor has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
