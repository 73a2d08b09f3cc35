package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xedro98/glacier/internal/logger"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "glacier",
	Short: "PHP website provisioning behind Docker",
	Long: `glacier provisions PHP/Nginx-backed websites running in a docker-compose
stack. It translates legacy .htaccess rewrite rules into nginx site
configuration and obtains TLS certificates through a manual DNS challenge.`,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
