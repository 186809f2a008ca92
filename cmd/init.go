package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/mkove/routegen/internal/config"
)

const starterRoutes = `# Route table consumed by routegen. Each entry maps a route name to a
# path pattern; :param marks a parameter, :param+ a repeatable one.
- name: home
  path: /
- name: user
  path: /users/:id
`

// InitCmd interactively scaffolds routegen.yaml and a starter route table.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create routegen.yaml in the current directory",
		RunE:  runInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing routegen.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(config.DefaultPath); err == nil && !force {
		overwrite := false
		prompt := &survey.Confirm{
			Message: config.DefaultPath + " already exists. Overwrite?",
			Default: false,
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Keeping the existing configuration.")
			return nil
		}
	}

	cfg := config.Default()

	dirPrompt := &survey.Input{
		Message: "Output directory for typed-router.d.ts (empty = project root):",
		Default: cfg.Dir,
	}
	if err := survey.AskOne(dirPrompt, &cfg.Dir); err != nil {
		return err
	}

	routesPrompt := &survey.Input{
		Message: "Route table file:",
		Default: cfg.Routes,
	}
	if err := survey.AskOne(routesPrompt, &cfg.Routes); err != nil {
		return err
	}

	portPrompt := &survey.Input{
		Message: "Dev server port:",
		Default: fmt.Sprintf("%d", cfg.Dev.Port),
	}
	port := ""
	if err := survey.AskOne(portPrompt, &port); err != nil {
		return err
	}
	if _, err := fmt.Sscanf(port, "%d", &cfg.Dev.Port); err != nil {
		return fmt.Errorf("invalid port %q", port)
	}

	if err := cfg.Write(config.DefaultPath); err != nil {
		return err
	}
	fmt.Println("Created " + config.DefaultPath)

	if _, err := os.Stat(cfg.Routes); os.IsNotExist(err) {
		if err := os.WriteFile(cfg.Routes, []byte(starterRoutes), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Routes, err)
		}
		fmt.Println("Created " + cfg.Routes)
	}

	fmt.Println("Run 'routegen generate' to emit typed-router.d.ts")
	return nil
}
