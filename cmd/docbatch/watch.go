// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docbatch/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Run the batch conversion on a cron schedule",
	Long: `Watch runs the same pipeline as convert on a standard 5-field cron
schedule until interrupted. Each tick is one full sequential batch; a tick
is skipped while the previous run is still blocking.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	watchCmd.Flags().String("schedule", "", "cron schedule, e.g. \"0 2 * * *\" (or watch.schedule in the config file)")
	watchCmd.Flags().String("pattern", "", "filename glob for source files (default \"*.doc\")")
	watchCmd.Flags().Bool("html", false, "also export each document as filtered HTML (.htm)")
	watchCmd.Flags().Bool("verify", false, "open each produced .docx and require extractable content")
	watchCmd.Flags().Bool("history", false, "record each run in the history ledger")
	watchCmd.Flags().String("history-db", "", "history ledger database file (default \"docbatch.db\")")
	watchCmd.Flags().String("soffice", "", "word processor binary override (default \"soffice\" on PATH)")

	rootCmd.AddCommand(watchCmd)
}

// newWatchCron builds the scheduler: standard 5-field expressions, and a
// skip-if-still-running chain so a batch that outlives the schedule interval
// never overlaps the next tick. Two batches racing on the same folder would
// overwrite and delete each other's targets.
func newWatchCron() *cron.Cron {
	return cron.New(
		cron.WithParser(cron.NewParser(
			cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow,
		)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}

// resolveSchedule prefers the flag value, falling back to the config file.
func resolveSchedule(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString("watch.schedule")
}

func runWatch(cmd *cobra.Command, args []string) error {
	flagSchedule, _ := cmd.Flags().GetString("schedule")

	cfg := batchConfig(cmd, args[0])
	cfg.Watch = types.WatchConfig{Schedule: resolveSchedule(flagSchedule)}
	if cfg.Watch.Schedule == "" {
		return fmt.Errorf("a schedule is required: pass --schedule or set watch.schedule in the config file")
	}

	c := newWatchCron()

	_, err := c.AddFunc(cfg.Watch.Schedule, func() { watchTick(cfg) })
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", cfg.Watch.Schedule, err)
	}

	c.Start()
	fmt.Fprintf(os.Stdout, "Watching %s on schedule %q. Press Ctrl-C to stop.\n",
		cfg.Convert.SourceDir, cfg.Watch.Schedule)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	<-c.Stop().Done()
	fmt.Fprintln(os.Stdout, "Stopped.")
	return nil
}

// watchTick runs one scheduled batch. Errors are reported and swallowed so
// one bad tick never kills the watcher.
func watchTick(cfg types.Config) {
	report, err := executeBatch(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scheduled run failed: %v\n", err)
		return
	}
	if cfg.History.Enabled {
		if err := recordRun(cfg.History, report); err != nil {
			fmt.Fprintf(os.Stderr, "recording run: %v\n", err)
		}
	}
}
