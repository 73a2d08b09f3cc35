package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xedro98/glacier/internal/certstore"
	"github.com/xedro98/glacier/internal/docker"
	"github.com/xedro98/glacier/internal/nginx"
	"github.com/xedro98/glacier/internal/output"
)

var forceRemove bool

var removeCmd = &cobra.Command{
	Use:     "remove <domain>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a website",
	Long: `Remove a website: its document root, nginx configuration and stored
certificate material.

Examples:
  glacier remove example.com
  glacier rm example.com --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Force removal without confirmation")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	domain := args[0]

	if err := validateDomain(domain); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := cfg.GetSite(domain); err != nil {
		return err
	}

	if !forceRemove {
		output.Print("Are you sure you want to remove website '%s'? [y/N]: ", domain)
		answer, _ := stdin.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			output.Info("Removal cancelled")
			return nil
		}
	}

	output.Info("Removing website %s...", domain)
	if err := os.RemoveAll(cfg.SiteDir(domain)); err != nil {
		return fmt.Errorf("failed to remove site directory: %w", err)
	}
	if err := nginx.NewWriter(cfg.NginxDir()).Remove(domain); err != nil {
		output.Warn("%v", err)
	}
	if err := certstore.Remove(cfg.BaseDir, domain); err != nil {
		output.Warn("%v", err)
	}

	stack := docker.New(cfg.BaseDir)
	if err := stack.ReloadProxy(); err != nil {
		output.Warn("Failed to reload proxy: %v", err)
	}

	if err := cfg.RemoveSite(domain); err == nil {
		if err := saveConfig(cfg); err != nil {
			output.Warn("Website removed but config save failed: %v", err)
		}
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"domain":  domain,
			"removed": true,
		},
		"Website %s removed", domain,
	)
}
