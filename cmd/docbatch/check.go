// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/docbatch/internal/preflight"
)

var checkCmd = &cobra.Command{
	Use:   "check [folder]",
	Short: "Pre-flight check of the source documents",
	Long: `Check validates every candidate .doc file before a batch run: the file
must be readable, non-empty, and carry the OLE compound-document signature
genuine legacy Word files have. Renamed text files and truncated downloads
are reported here instead of failing mid-batch.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().String("pattern", "", "filename glob for source files (default \"*.doc\")")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	pattern, _ := cmd.Flags().GetString("pattern")

	res, err := preflight.Check(args[0], pattern, os.Stdout)
	if err != nil {
		return err
	}

	if res.HasFailures() {
		return &exitError{
			code: exitFailures,
			msg:  fmt.Sprintf("%d of %d file(s) failed the pre-flight check", res.Bad, res.Total()),
		}
	}
	if res.OK > 0 {
		color.Green("All %d file(s) look convertible.", res.OK)
	}
	return nil
}
