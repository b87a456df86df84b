package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gcbaptista/go-sheet-search/config"
	"github.com/gcbaptista/go-sheet-search/internal/engine"
	"github.com/gcbaptista/go-sheet-search/internal/workbook"
	"github.com/gcbaptista/go-sheet-search/services"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	sheetColor   = color.New(color.FgYellow)
	scoreColor   = color.New(color.FgGreen)
	mutedColor   = color.New(color.FgHiBlack)
)

func newQueryCmd(v *viper.Viper) *cobra.Command {
	var (
		noSemantic bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "query <workbook.xlsx> <query>",
		Short: "Search a workbook once and print the results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWith(v, cfgFile)
			if err != nil {
				return err
			}

			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}

			session := engine.NewSession(cfg.Search, 1)
			defer session.Close()

			if _, err := session.Load(cmd.Context(), wb); err != nil {
				return err
			}

			runSemantic := !noSemantic
			result, err := session.Search(cmd.Context(), services.SearchQuery{
				Query:       args[1],
				RunSemantic: &runSemantic,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noSemantic, "no-semantic", false, "skip semantic search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

// printResult renders a search result for a terminal.
func printResult(w io.Writer, result services.SearchResult) {
	headingColor.Fprintf(w, "Keyword (%s match)\n", result.Keyword.Policy)
	fmt.Fprintln(w, result.Keyword.Summary)
	for _, name := range sortedKeys(result.Keyword.Results) {
		sheetColor.Fprintf(w, "\n[%s]\n", name)
		for _, match := range result.Keyword.Results[name] {
			fmt.Fprintf(w, "  %s %s\n", mutedColor.Sprintf("row %d:", match.Index), formatRecord(match.Record))
		}
	}

	if result.Semantic == nil {
		return
	}

	headingColor.Fprintf(w, "\nSemantic\n")
	fmt.Fprintln(w, result.Semantic.Summary)
	for _, name := range sortedKeys(result.Semantic.Results) {
		sheetColor.Fprintf(w, "\n[%s]\n", name)
		for _, match := range result.Semantic.Results[name] {
			fmt.Fprintf(w, "  %s %s %s\n",
				scoreColor.Sprintf("%.4f", match.Score),
				mutedColor.Sprintf("row %d:", match.Index),
				formatRecord(match.Record))
		}
	}
}

// formatRecord renders a record as "col=value" pairs in column name order.
func formatRecord(record map[string]interface{}) string {
	keys := sortedKeys(record)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, record[k]))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
