// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// JobStatus indicates the outcome of one conversion job.
type JobStatus string

const (
	// JobConverted means every target format was saved successfully.
	JobConverted JobStatus = "converted"

	// JobPartial means at least one target was saved but the job still
	// errored: a later target failed, or the document failed to close
	// after all targets were written. The saved targets are kept on disk.
	JobPartial JobStatus = "partial"

	// JobFailed means no target was produced.
	JobFailed JobStatus = "failed"
)

// Target is one output of a conversion job: a destination path and the save
// format requested from the word processor.
type Target struct {
	// Path is the destination file path. An existing file at this path is
	// overwritten without confirmation.
	Path string `json:"path" yaml:"path"`

	// Format is the save-format code passed to the automation session.
	Format FormatCode `json:"format" yaml:"format"`
}

// Job is the unit of work for one source file: open it once, save it to each
// target format, close it. Jobs are derived deterministically from discovered
// files and exist only for the duration of a run.
type Job struct {
	// Source is the path of the legacy document to convert.
	Source string `json:"source" yaml:"source"`

	// Targets lists the outputs in save order.
	Targets []Target `json:"targets" yaml:"targets"`
}

// JobOutcome records what happened to a single job.
type JobOutcome struct {
	Job    Job       `json:"job" yaml:"job"`
	Status JobStatus `json:"status" yaml:"status"`

	// Saved lists the target paths that were written successfully.
	Saved []string `json:"saved,omitempty" yaml:"saved,omitempty"`

	// Error holds the underlying failure message for failed or partial jobs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport is the ordered record of one batch run.
type RunReport struct {
	SourceDir  string       `json:"source_dir" yaml:"source_dir"`
	Pattern    string       `json:"pattern" yaml:"pattern"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	Outcomes   []JobOutcome `json:"outcomes" yaml:"outcomes"`
}

// Converted returns the number of fully successful jobs.
func (r RunReport) Converted() int { return r.count(JobConverted) }

// Partial returns the number of jobs where only some targets were saved.
func (r RunReport) Partial() int { return r.count(JobPartial) }

// Failed returns the number of jobs that produced no output.
func (r RunReport) Failed() int { return r.count(JobFailed) }

// Total returns the number of jobs attempted.
func (r RunReport) Total() int { return len(r.Outcomes) }

// HasFailures reports whether any job failed, fully or partially.
func (r RunReport) HasFailures() bool {
	return r.Failed() > 0 || r.Partial() > 0
}

func (r RunReport) count(status JobStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
