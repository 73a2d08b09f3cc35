package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xedro98/glacier/internal/certstore"
	"github.com/xedro98/glacier/internal/docker"
	"github.com/xedro98/glacier/internal/errors"
	"github.com/xedro98/glacier/internal/output"
)

var (
	rebuildGit     string
	reconfigureSSL bool
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild <domain>",
	Short: "Rebuild an existing website",
	Long: `Rebuild an existing website: optionally pull the latest code, rebuild the
PHP container and regenerate the nginx configuration from the site's rule
files. TLS stays enabled when stored certificate material exists, or the
challenge workflow can be re-run with --reconfigure-ssl.

Examples:
  glacier rebuild example.com
  glacier rebuild example.com --git https://github.com/user/site.git
  glacier rebuild example.com --reconfigure-ssl`,
	Args: cobra.ExactArgs(1),
	RunE: runRebuild,
}

func init() {
	rebuildCmd.Flags().StringVar(&rebuildGit, "git", "", "Pull the latest code before rebuilding")
	rebuildCmd.Flags().BoolVar(&reconfigureSSL, "reconfigure-ssl", false, "Re-run the TLS certificate workflow")

	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	domain := args[0]

	if err := validateDomain(domain); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	site, err := cfg.GetSite(domain)
	if err != nil {
		return err
	}

	siteDir := cfg.SiteDir(domain)
	if _, err := os.Stat(siteDir); os.IsNotExist(err) {
		return errors.NotFound(domain)
	}

	if rebuildGit != "" {
		output.Info("Updating repository for %s...", domain)
		if out, err := sysExec.Execute("git", "-C", siteDir, "pull"); err != nil {
			return fmt.Errorf("git pull failed: %s", string(out))
		}
	}

	stack := docker.New(cfg.BaseDir)
	output.Info("Rebuilding PHP container...")
	if err := stack.Build("php"); err != nil {
		return err
	}
	if err := stack.Recreate("php"); err != nil {
		return err
	}

	tls := false
	if reconfigureSSL {
		tls = provisionTLS(cfg, domain)
	} else {
		tls = certstore.Installed(cfg.BaseDir, domain)
	}

	if err := applySiteConfig(cfg, domain, tls); err != nil {
		return err
	}
	if err := stack.ReloadProxy(); err != nil {
		output.Warn("Failed to reload proxy: %v", err)
	}

	site.SSL = tls
	if err := saveConfig(cfg); err != nil {
		output.Warn("Website rebuilt but config save failed: %v", err)
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"domain":  domain,
			"ssl":     tls,
		},
		"Website %s rebuilt successfully", domain,
	)
}
