package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "auction-sim",
	Short: "Run cricket player auctions from the terminal",
	Long: `auction-sim runs a full player auction without a server.

The nine AI franchises bid on their own; the human franchise follows a
simple rule (bid on anyone rated at least --human-min-rating). Rules and the
player catalog come from the same environment variables the server reads.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. Cobra's own error and usage output is
// silenced; commands report through the printer package.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with auction settings")
}
