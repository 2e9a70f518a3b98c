// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docbatch/internal/history"
	"github.com/pdiddy/docbatch/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded batch runs",
	Long: `History lists the batch runs recorded in the SQLite ledger (convert
--history). Use --run to show the per-file outcomes of one run, and --json
for machine-readable output.`,
	SilenceUsage: true,
	RunE:         runHistory,
}

func init() {
	historyCmd.Flags().String("history-db", "", "history ledger database file (default \"docbatch.db\")")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the per-file outcomes of this run")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("history-db")
	if path == "" {
		path = viper.GetString("history.path")
	}

	store, err := history.NewStore(types.HistoryConfig{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if runID, _ := cmd.Flags().GetInt64("run"); runID != 0 {
		jobs, err := store.Jobs(context.Background(), runID)
		if err != nil {
			return err
		}
		return formatJobs(runID, jobs, jsonOutput)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		return err
	}
	return formatRuns(runs, jsonOutput)
}

func formatRuns(runs []history.RunSummary, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-19s  %-30s  %9s  %7s  %6s  %5s\n",
		"Run", "Started", "Folder", "Converted", "Partial", "Failed", "Total")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 92))

	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-5d  %-19s  %-30s  %9d  %7d  %6d  %5d\n",
			r.ID, r.StartedAt.Format(time.DateTime), truncate(r.SourceDir, 30),
			r.Converted, r.Partial, r.Failed, r.Total)
	}
	return nil
}

func formatJobs(runID int64, jobs []history.JobRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(jobs)
	}

	if len(jobs) == 0 {
		fmt.Printf("No jobs recorded for run %d.\n", runID)
		return nil
	}

	for _, j := range jobs {
		line := fmt.Sprintf("%-9s  %s", j.Status, filepath.Base(j.Source))
		if j.Error != "" {
			line += " (" + j.Error + ")"
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
