package main

import (
	"github.com/spf13/cobra"
	"grailhunter/internal/di"
	"grailhunter/internal/structures"
	"os/signal"
	"syscall"
)

func newServeCmd() *cobra.Command {
	flags := &structures.CliFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := di.InitApp(flags)
			if err != nil {
				return err
			}
			defer cleanup()
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	cmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "also log to the console")
	return cmd
}
