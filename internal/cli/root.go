package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/botpress-labs/botpress/internal/branding"
	"github.com/botpress-labs/botpress/internal/config"
	"github.com/botpress-labs/botpress/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

// logger is configured in PersistentPreRun and injected into every
// component the commands construct.
var logger *log.Logger

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers and loads extension modules declared in a project's
package manifest, and browses the community module catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger = logging.New(os.Stderr, level)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
