package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/botpress-labs/botpress/internal/config"
	"github.com/botpress-labs/botpress/internal/modules"
)

var (
	modulesProjectDir string
	modulesDeveloping bool
	modulesJSON       bool
)

func init() {
	modulesCmd.PersistentFlags().StringVar(&modulesProjectDir, "project", ".", "Project directory holding the package manifest")
	modulesCmd.PersistentFlags().BoolVar(&modulesDeveloping, "developing", false, "Also scan development-only dependencies")
	modulesCmd.PersistentFlags().BoolVar(&modulesJSON, "json", false, "Output in JSON format")

	modulesCmd.AddCommand(modulesListCmd)
	modulesCmd.AddCommand(modulesInstalledCmd)
	modulesCmd.AddCommand(modulesHeroCmd)
	rootCmd.AddCommand(modulesCmd)
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Browse community modules and inspect installed ones",
}

// newManager builds the module manager for the current invocation.
func newManager() *modules.Manager {
	return modules.New(modules.Options{
		ProjectRoot:  modulesProjectDir,
		DataDir:      config.Dir(),
		CatalogURL:   config.CatalogURL(),
		HostVersion:  buildVersion,
		FallbackHero: config.FallbackHero(),
		Developing:   modulesDeveloping,
		Logger:       logger,
	})
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List community modules from the catalog",
	Long:  `List all community-published modules, refreshing the local catalog cache when stale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mods, err := newManager().ListAllCommunityModules(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing community modules: %w", err)
		}

		if modulesJSON {
			return printJSON(mods)
		}

		if len(mods) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No community modules available.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tSTARS\tINSTALLED\tDESCRIPTION")
		for _, m := range mods {
			installed := ""
			if m.Installed {
				installed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				m.Name, m.Version, formatCount(m.Stars), installed, m.Description)
		}
		return w.Flush()
	},
}

var modulesInstalledCmd = &cobra.Command{
	Use:   "installed",
	Short: "List extension modules installed in the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		installed, err := newManager().ListInstalled()
		if err != nil {
			return fmt.Errorf("listing installed modules: %w", err)
		}

		if modulesJSON {
			return printJSON(installed)
		}

		if len(installed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No extension modules installed.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tROOT")
		for _, m := range installed {
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.Version, m.Root)
		}
		return w.Flush()
	},
}

var modulesHeroCmd = &cobra.Command{
	Use:   "hero",
	Short: "Spotlight a random community contributor",
	RunE: func(cmd *cobra.Command, args []string) error {
		hero, err := newManager().GetRandomCommunityHero(cmd.Context())
		if err != nil {
			return fmt.Errorf("picking community hero: %w", err)
		}

		if modulesJSON {
			return printJSON(hero)
		}

		name := hero.Name
		if name == "" {
			name = hero.Username
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) - %d contributions to %s\n",
			name, hero.Username, hero.Contributions, hero.Module)
		return nil
	},
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// formatCount renders an optional counter, blank when absent.
func formatCount(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
