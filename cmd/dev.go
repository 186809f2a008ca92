package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/mkove/routegen/internal/config"
	"github.com/mkove/routegen/internal/dev"
	"github.com/mkove/routegen/internal/emitter"
)

// DevCmd starts the development orchestrator.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Watch the route table and regenerate on every change",
		Long:  "Start the dev server: watch the route table file, accept live route-table updates over WebSocket or HTTP, and regenerate typed-router.d.ts whenever the table changes.",
		RunE:  runDev,
	}

	cmd.Flags().String("config", config.DefaultPath, "Configuration file")
	cmd.Flags().Int("port", 0, "Dev server port (overrides config)")
	cmd.Flags().Bool("quiet", false, "Only report errors")
	cmd.Flags().Bool("debug", false, "Enable debug output")

	return cmd
}

func runDev(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Dev.Port = port
	}

	reporter := newReporter(cmd)

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	em := emitter.New(afs.New(), root, cfg.Dir, reporter)
	orchestrator := dev.New(cfg, reporter, em)
	return orchestrator.Run(ctx)
}
