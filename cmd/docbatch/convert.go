// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docbatch/internal/batch"
	"github.com/pdiddy/docbatch/internal/history"
	"github.com/pdiddy/docbatch/internal/office"
	"github.com/pdiddy/docbatch/internal/verify"
	"github.com/pdiddy/docbatch/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [folder]",
	Short: "Convert every legacy .doc in a folder to .docx",
	Long: `Convert launches the word processor headless, enumerates the folder for
legacy .doc files (non-recursive, case-insensitive), and re-saves each one
as .docx. With --html each file is additionally exported as filtered HTML.

Existing destination files are overwritten. A failing file is reported and
the batch continues; the exit code is 1 when any file failed and 2 when the
word processor could not be launched at all.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	convertCmd.Flags().String("pattern", "", "filename glob for source files (default \"*.doc\")")
	convertCmd.Flags().Bool("html", false, "also export each document as filtered HTML (.htm)")
	convertCmd.Flags().Bool("verify", false, "open each produced .docx and require extractable content")
	convertCmd.Flags().String("report", "", "write the run report to this path (.json for JSON, YAML otherwise)")
	convertCmd.Flags().Bool("history", false, "record the run in the history ledger")
	convertCmd.Flags().String("history-db", "", "history ledger database file (default \"docbatch.db\")")
	convertCmd.Flags().String("soffice", "", "word processor binary override (default \"soffice\" on PATH)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := batchConfig(cmd, args[0])

	report, err := executeBatch(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := batch.WriteReport(report, path); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Report written to", path)
	}

	if cfg.History.Enabled {
		if err := recordRun(cfg.History, report); err != nil {
			return err
		}
	}

	if report.HasFailures() {
		failed := report.Failed() + report.Partial()
		return &exitError{
			code: exitFailures,
			msg:  fmt.Sprintf("%d of %d file(s) failed", failed, report.Total()),
		}
	}

	color.Green("All %d file(s) converted.", report.Total())
	return nil
}

// executeBatch runs one full batch: launch, discover, convert, release.
// A launch failure is fatal and maps to the distinct launch exit code.
// Shared with the watch command.
func executeBatch(cfg types.Config, w io.Writer) (types.RunReport, error) {
	session, err := office.Launch(cfg.Office)
	if err != nil {
		return types.RunReport{}, &exitError{
			code: exitLaunch,
			msg:  fmt.Sprintf("cannot launch word processor: %v", err),
		}
	}

	files, err := batch.Discover(cfg.Convert.SourceDir, cfg.Convert.Pattern)
	if err != nil {
		session.Quit()
		return types.RunReport{}, err
	}

	opts := batch.Options{
		SourceDir:  cfg.Convert.SourceDir,
		Pattern:    cfg.Convert.Pattern,
		ExportHTML: cfg.Convert.ExportHTML,
	}
	if cfg.Convert.Verify {
		opts.Verifier = verify.Checker{}
	}

	return batch.Run(session, files, opts, w), nil
}

func recordRun(cfg types.HistoryConfig, report types.RunReport) error {
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.Record(context.Background(), report)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Recorded as run %d\n", runID)
	return nil
}

// batchConfig merges flags with the viper config file into one Config.
func batchConfig(cmd *cobra.Command, sourceDir string) types.Config {
	pattern, _ := cmd.Flags().GetString("pattern")
	if pattern == "" {
		pattern = viper.GetString("convert.pattern")
	}

	html, _ := cmd.Flags().GetBool("html")
	if !html {
		html = viper.GetBool("convert.export_html")
	}

	verifyOut, _ := cmd.Flags().GetBool("verify")
	if !verifyOut {
		verifyOut = viper.GetBool("convert.verify")
	}

	binary, _ := cmd.Flags().GetString("soffice")
	if binary == "" {
		binary = viper.GetString("office.binary")
	}

	historyOn, _ := cmd.Flags().GetBool("history")
	if !historyOn {
		historyOn = viper.GetBool("history.enabled")
	}
	historyDB, _ := cmd.Flags().GetString("history-db")
	if historyDB == "" {
		historyDB = viper.GetString("history.path")
	}

	return types.Config{
		Office: types.OfficeConfig{Binary: binary},
		Convert: types.ConvertConfig{
			SourceDir:  sourceDir,
			Pattern:    pattern,
			ExportHTML: html,
			Verify:     verifyOut,
		},
		History: types.HistoryConfig{Enabled: historyOn, Path: historyDB},
	}
}
