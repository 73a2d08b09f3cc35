package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xedro98/glacier/internal/compose"
	"github.com/xedro98/glacier/internal/output"
)

var setupBaseDir string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare the base directory and compose stack",
	Long: `Create the base directory layout (nginx configs, site roots, certificate
storage) and write the docker-compose stack definition.

Examples:
  glacier setup
  glacier setup --base-dir /srv/glacier`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupBaseDir, "base-dir", "", "Base directory for the stack (default /opt/glacier)")

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if setupBaseDir != "" {
		cfg.BaseDir = setupBaseDir
	}

	output.Info("Scaffolding %s...", cfg.BaseDir)
	if err := compose.Scaffold(cfg.BaseDir); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"success":  true,
			"base_dir": cfg.BaseDir,
		})
	}

	output.Success("Glacier setup completed successfully")
	output.Info("You can now create websites with: glacier create <domain>")
	return nil
}
