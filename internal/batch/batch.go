// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/docbatch/internal/office"
	"github.com/pdiddy/docbatch/pkg/types"
)

// Verifier checks a produced target file after a save. Implementations may
// reject outputs the word processor claims to have written.
type Verifier interface {
	Verify(path string) error
}

// Options configures a batch run.
type Options struct {
	// SourceDir and Pattern are recorded in the run report.
	SourceDir string
	Pattern   string

	// ExportHTML adds a filtered-HTML target to every job.
	ExportHTML bool

	// Verifier, when non-nil, is applied to each produced .docx target.
	// A verification failure counts as that target's failure.
	Verifier Verifier
}

// Run converts each file through the session, one job at a time. A failing
// job never prevents the remaining jobs from running. Pre-existing files at
// target paths are overwritten without confirmation. The session is released
// exactly once, on every exit path, including an empty file list.
func Run(session office.Session, files []string, opts Options, w io.Writer) types.RunReport {
	report := types.RunReport{
		SourceDir: opts.SourceDir,
		Pattern:   opts.Pattern,
		StartedAt: time.Now().UTC(),
	}

	defer func() {
		if err := session.Quit(); err != nil {
			fmt.Fprintf(w, "warning: releasing word processor: %v\n", err)
		}
	}()

	for _, file := range files {
		job := DeriveJob(file, opts.ExportHTML)
		report.Outcomes = append(report.Outcomes, runJob(session, job, opts.Verifier, w))
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d partial, %d failed (total: %d)\n",
		report.Converted(), report.Partial(), report.Failed(), report.Total())

	report.FinishedAt = time.Now().UTC()
	return report
}

// runJob processes one source file: open, save each target format in order,
// close. The first error stops the remaining targets of this job; targets
// saved before the error are kept.
func runJob(session office.Session, job types.Job, verifier Verifier, w io.Writer) types.JobOutcome {
	name := filepath.Base(job.Source)
	fmt.Fprintf(w, "processing: %s\n", name)

	outcome := types.JobOutcome{Job: job}

	doc, err := session.Open(job.Source)
	if err != nil {
		outcome.Status = types.JobFailed
		outcome.Error = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return outcome
	}

	var jobErr error
	for _, target := range job.Targets {
		if err := saveTarget(doc, target, verifier); err != nil {
			jobErr = err
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			break
		}
		outcome.Saved = append(outcome.Saved, target.Path)
		fmt.Fprintf(w, "saved:   %s\n", filepath.Base(target.Path))
	}

	if err := doc.Close(); err != nil && jobErr == nil {
		jobErr = fmt.Errorf("closing: %w", err)
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, jobErr)
	}

	switch {
	case jobErr == nil:
		outcome.Status = types.JobConverted
	case len(outcome.Saved) > 0:
		outcome.Status = types.JobPartial
		outcome.Error = jobErr.Error()
	default:
		outcome.Status = types.JobFailed
		outcome.Error = jobErr.Error()
	}
	return outcome
}

// saveTarget performs one save-as and optional verification. On failure the
// partial output file is deleted so a failed save never leaves a truncated
// artifact behind.
func saveTarget(doc office.Document, target types.Target, verifier Verifier) error {
	if err := doc.SaveAs(target.Path, target.Format); err != nil {
		os.Remove(target.Path)
		return err
	}
	if verifier != nil && target.Format == types.FormatDocx {
		if err := verifier.Verify(target.Path); err != nil {
			os.Remove(target.Path)
			return fmt.Errorf("verifying %s: %w", filepath.Base(target.Path), err)
		}
	}
	return nil
}
