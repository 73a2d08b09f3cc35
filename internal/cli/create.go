package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xedro98/glacier/internal/config"
	"github.com/xedro98/glacier/internal/docker"
	"github.com/xedro98/glacier/internal/errors"
	"github.com/xedro98/glacier/internal/output"
)

var (
	createGit string
	skipSSL   bool
)

var createCmd = &cobra.Command{
	Use:   "create <domain>",
	Short: "Create a new website",
	Long: `Create a new website: set up its document root (optionally cloned from a
Git repository), generate its nginx configuration, start the stack and run
the DNS challenge for a TLS certificate.

Examples:
  glacier create example.com
  glacier create example.com --git https://github.com/user/site.git
  glacier create example.com --skip-ssl`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createGit, "git", "", "Git repository to clone as the document root")
	createCmd.Flags().BoolVar(&skipSSL, "skip-ssl", false, "Skip the TLS certificate workflow")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	domain := args[0]

	if err := validateDomain(domain); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, exists := cfg.Sites[domain]; exists {
		return errors.AlreadyExists(domain)
	}

	siteDir := cfg.SiteDir(domain)
	if err := os.MkdirAll(siteDir, 0755); err != nil {
		return fmt.Errorf("failed to create site directory: %w", err)
	}

	if createGit != "" {
		output.Info("Cloning repository for %s...", domain)
		if out, err := sysExec.Execute("git", "clone", createGit, siteDir); err != nil {
			return fmt.Errorf("git clone failed: %s", string(out))
		}
	} else {
		index := filepath.Join(siteDir, "index.php")
		if _, err := os.Stat(index); os.IsNotExist(err) {
			if err := os.WriteFile(index, []byte("<?php phpinfo(); ?>"), 0644); err != nil {
				return fmt.Errorf("failed to write placeholder index: %w", err)
			}
		}
	}

	if err := applySiteConfig(cfg, domain, false); err != nil {
		return err
	}

	stack := docker.New(cfg.BaseDir)
	output.Info("Starting services...")
	if err := stack.Up(); err != nil {
		return err
	}

	site := &config.Site{
		Domain:    domain,
		Git:       createGit,
		CreatedAt: time.Now(),
	}

	if skipSSL {
		output.Warn("Skipping SSL setup as requested.")
	} else {
		output.Info("Proceeding with SSL setup.")
		if provisionTLS(cfg, domain) {
			site.SSL = true
			if err := applySiteConfig(cfg, domain, true); err != nil {
				return err
			}
			if err := stack.ReloadProxy(); err != nil {
				output.Warn("Failed to reload proxy: %v", err)
			}
			output.Success("SSL set up successfully for %s", domain)
		} else {
			// site stays reachable over plain HTTP
			if err := stack.ReloadProxy(); err != nil {
				output.Warn("Failed to reload proxy: %v", err)
			}
		}
	}

	if err := cfg.AddSite(site); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		output.Warn("Website created but config save failed: %v", err)
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"domain":  domain,
			"ssl":     site.SSL,
		},
		"Website %s created successfully", domain,
	)
}
