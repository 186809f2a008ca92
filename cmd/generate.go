package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/mkove/routegen/internal/config"
	"github.com/mkove/routegen/internal/diag"
	"github.com/mkove/routegen/internal/emitter"
	"github.com/mkove/routegen/internal/source"
)

// GenerateCmd runs the pipeline once from the configured route table file.
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate typed-router.d.ts from the route table file",
		Long:  "Read the configured route table, infer parameter types for every route, and write the typed route declaration file. The write is skipped when the output is already up to date.",
		RunE:  runGenerate,
	}

	cmd.Flags().String("config", config.DefaultPath, "Configuration file")
	cmd.Flags().String("dir", "", "Output directory (overrides config)")
	cmd.Flags().String("routes", "", "Route table file (overrides config)")
	cmd.Flags().Bool("quiet", false, "Only report errors")
	cmd.Flags().Bool("debug", false, "Enable debug output")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Dir = dir
	}
	if routesFile, _ := cmd.Flags().GetString("routes"); routesFile != "" {
		cfg.Routes = routesFile
	}

	reporter := newReporter(cmd)

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	src := source.NewFile(cfg.Routes, reporter)
	table, err := src.Load()
	if err != nil {
		return err
	}

	em := emitter.New(afs.New(), root, cfg.Dir, reporter)
	em.Generate(context.Background(), table)
	return nil
}

func newReporter(cmd *cobra.Command) *diag.Reporter {
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")
	level := diag.InfoLevel
	if quiet {
		level = diag.ErrorLevel
	}
	if debug {
		level = diag.DebugLevel
	}
	return diag.New(level)
}
