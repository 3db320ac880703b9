package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgload",
	Short: "Load a directory of CSV files into PostgreSQL",
	Long: `pgload turns every CSV file of a directory into its own PostgreSQL table.

Each file is parsed, its column types are inferred, and the table named after
the file is dropped, recreated and filled inside one transaction. A file that
fails is rolled back and reported; the remaining files are still loaded.

Exit Codes:
  0  - Run completed (individual files may have failed, see the summary)
  1  - Run could not complete (missing directory, no input files,
       connection failure, interrupt or unexpected error)
  2  - CLI usage error (invalid arguments or flags)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// -h is taken by --host, so help is long-form only
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output (also honours $NO_COLOR)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func getNoColorFlag(cmd *cobra.Command) bool {
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return false
	}
	return noColor
}
