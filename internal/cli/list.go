package cli

import (
	"sort"

	"github.com/spf13/cobra"
	"github.com/xedro98/glacier/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List provisioned websites",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sites := cfg.ListSites()
	sort.Slice(sites, func(i, j int) bool {
		return sites[i].Domain < sites[j].Domain
	})

	if jsonOutput {
		return output.JSON(sites)
	}

	if len(sites) == 0 {
		output.Info("No websites provisioned yet")
		return nil
	}

	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		ssl := "no"
		if s.SSL {
			ssl = "yes"
		}
		rows = append(rows, []string{s.Domain, ssl, s.CreatedAt.Format("2006-01-02")})
	}
	output.Table([]string{"DOMAIN", "SSL", "CREATED"}, rows)

	return nil
}
