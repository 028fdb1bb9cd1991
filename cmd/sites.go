package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/scholarhub/scholarship-crawler/internal/sites"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Inspect site profiles",
	Long:  "Commands for listing the registered site profiles and showing their full configuration.",
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered site profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := sites.NewRegistry(cfg.Sites.File)
		if err != nil {
			return err
		}
		formatSitesList(os.Stdout, reg.All())
		return nil
	},
}

var sitesShowCmd = &cobra.Command{
	Use:   "show <site>",
	Short: "Show a site profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := sites.NewRegistry(cfg.Sites.File)
		if err != nil {
			return err
		}
		profile, err := reg.Get(args[0])
		if err != nil {
			return err
		}
		return yaml.NewEncoder(os.Stdout).Encode(profile)
	},
}

func init() {
	sitesCmd.AddCommand(sitesListCmd)
	sitesCmd.AddCommand(sitesShowCmd)
	rootCmd.AddCommand(sitesCmd)
}

// formatSitesList writes a tabular summary of profiles to w.
func formatSitesList(out io.Writer, profiles []*sites.Profile) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPROVIDER\tSTART_URLS\tDOMAINS")
	_, _ = fmt.Fprintln(w, "----\t--------\t----------\t-------")

	for _, p := range profiles {
		provider := p.Provider
		if provider == "" && len(p.ProviderByDomain) > 0 {
			provider = "(by domain)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			p.Name,
			provider,
			len(p.StartURLs),
			strings.Join(p.AllowedDomains, ", "),
		)
	}
	_ = w.Flush()
}
