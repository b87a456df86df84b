// Command sheetsearch serves keyword and semantic search over spreadsheet
// workbooks, or runs a single search against a workbook file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gcbaptista/go-sheet-search/config"
)

const version = "1.0.0"

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "sheetsearch",
		Short:         "Keyword and semantic search over spreadsheet workbooks",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().Int("per-sheet-cap", config.DefaultPerSheetCap, "max keyword rows returned per sheet")
	rootCmd.PersistentFlags().Int("total-cap", config.DefaultTotalCap, "max keyword rows returned overall (negative: unlimited)")
	rootCmd.PersistentFlags().Int("top-k", config.DefaultTopKPerSheet, "semantic hits returned per sheet")

	// Flags override config file and environment
	_ = v.BindPFlag("search.per_sheet_cap", rootCmd.PersistentFlags().Lookup("per-sheet-cap"))
	_ = v.BindPFlag("search.total_cap", rootCmd.PersistentFlags().Lookup("total-cap"))
	_ = v.BindPFlag("search.top_k_per_sheet", rootCmd.PersistentFlags().Lookup("top-k"))

	rootCmd.AddCommand(newServeCmd(v), newQueryCmd(v), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sheetsearch v%s\n", version)
		},
	}
}
