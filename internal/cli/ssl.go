package cli

import (
	"github.com/spf13/cobra"
	"github.com/xedro98/glacier/internal/docker"
	"github.com/xedro98/glacier/internal/output"
)

var sslCmd = &cobra.Command{
	Use:   "ssl <domain>",
	Short: "Run the TLS certificate workflow for an existing site",
	Long: `Run the manual DNS challenge for an existing site and enable TLS when it
succeeds. The site stays reachable over plain HTTP on any failure.

Examples:
  glacier ssl example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runSSL,
}

func init() {
	rootCmd.AddCommand(sslCmd)
}

func runSSL(cmd *cobra.Command, args []string) error {
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

	tls := provisionTLS(cfg, domain)

	if err := applySiteConfig(cfg, domain, tls); err != nil {
		return err
	}

	stack := docker.New(cfg.BaseDir)
	if err := stack.ReloadProxy(); err != nil {
		output.Warn("Failed to reload proxy: %v", err)
	}

	site.SSL = tls
	if err := saveConfig(cfg); err != nil {
		output.Warn("Config save failed: %v", err)
	}

	if tls {
		return outputResult(
			map[string]interface{}{
				"success": true,
				"domain":  domain,
				"ssl":     true,
			},
			"SSL set up successfully for %s", domain,
		)
	}

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"success": false,
			"domain":  domain,
			"ssl":     false,
		})
	}
	output.Warn("Site %s remains reachable over HTTP only", domain)
	return nil
}
