package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkove/routegen/cmd"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "routegen",
		Short:   "routegen - typed route declarations for TypeScript routers",
		Long:    `routegen generates a TypeScript declaration file mapping route names to their path, parameter shapes, and child routes, giving the router API compile-time knowledge of your route table.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("routegen v" + version)
			fmt.Println("Run 'routegen --help' for available commands")
		},
	}

	rootCmd.AddCommand(cmd.InitCmd())
	rootCmd.AddCommand(cmd.GenerateCmd())
	rootCmd.AddCommand(cmd.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
