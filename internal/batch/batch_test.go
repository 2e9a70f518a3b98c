// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/docbatch/internal/office"
	"github.com/pdiddy/docbatch/pkg/types"
)

// fakeDocument implements office.Document. Saves write a marker file unless
// an error is configured for the format; with partialWrite the file is
// written before the error is returned, simulating a truncated save.
type fakeDocument struct {
	source       string
	saveErrs     map[types.FormatCode]error
	partialWrite bool
	closeErr     error
}

func (d *fakeDocument) SaveAs(path string, format types.FormatCode) error {
	if err := d.saveErrs[format]; err != nil {
		if d.partialWrite {
			os.WriteFile(path, []byte("partial"), 0o644)
		}
		return err
	}
	return os.WriteFile(path, []byte("converted"), 0o644)
}

func (d *fakeDocument) Close() error { return d.closeErr }

// fakeSession implements office.Session and counts Quit calls. The error
// maps are keyed by source base name.
type fakeSession struct {
	openErrs  map[string]error
	saveErrs  map[string]map[types.FormatCode]error
	closeErrs map[string]error
	partial   bool
	quitCalls int
}

func (s *fakeSession) Open(path string) (office.Document, error) {
	base := filepath.Base(path)
	if err := s.openErrs[base]; err != nil {
		return nil, err
	}
	return &fakeDocument{
		source:       path,
		saveErrs:     s.saveErrs[base],
		closeErr:     s.closeErrs[base],
		partialWrite: s.partial,
	}, nil
}

func (s *fakeSession) Quit() error {
	s.quitCalls++
	return nil
}

func writeSources(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], []byte("legacy doc"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func TestRunAllSucceed(t *testing.T) {
	dir := t.TempDir()
	files := writeSources(t, dir, "a.doc", "b.doc")
	session := &fakeSession{}
	var out bytes.Buffer

	report := Run(session, files, Options{SourceDir: dir}, &out)

	if report.Total() != 2 || report.Converted() != 2 {
		t.Fatalf("report = %d converted of %d, want 2 of 2", report.Converted(), report.Total())
	}
	if report.HasFailures() {
		t.Error("HasFailures should be false")
	}
	for _, name := range []string{"a.docx", "b.docx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
	if session.quitCalls != 1 {
		t.Errorf("quit calls = %d, want 1", session.quitCalls)
	}
}

func TestRunFailureDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	files := writeSources(t, dir, "a.doc", "b.doc", "c.doc")
	session := &fakeSession{
		openErrs: map[string]error{"b.doc": errors.New("corrupt container")},
	}
	var out bytes.Buffer

	report := Run(session, files, Options{SourceDir: dir}, &out)

	if report.Total() != 3 {
		t.Fatalf("total = %d, want 3: a failing job must not skip the rest", report.Total())
	}
	if report.Converted() != 2 || report.Failed() != 1 {
		t.Errorf("converted/failed = %d/%d, want 2/1", report.Converted(), report.Failed())
	}
	if !strings.Contains(out.String(), "corrupt container") {
		t.Error("failure line should carry the underlying message")
	}
	if session.quitCalls != 1 {
		t.Errorf("quit calls = %d, want 1", session.quitCalls)
	}
}

func TestRunAllFailStillQuitsOnce(t *testing.T) {
	dir := t.TempDir()
	files := writeSources(t, dir, "a.doc", "b.doc")
	session := &fakeSession{
		openErrs: map[string]error{
			"a.doc": errors.New("boom"),
			"b.doc": errors.New("boom"),
		},
	}
	var out bytes.Buffer

	report := Run(session, files, Options{SourceDir: dir}, &out)

	if report.Failed() != 2 {
		t.Errorf("failed = %d, want 2", report.Failed())
	}
	if session.quitCalls != 1 {
		t.Errorf("quit calls = %d, want 1", session.quitCalls)
	}
}

func TestRunPartialOutcome(t *testing.T) {
	dir := t.TempDir()
	files := writeSources(t, dir, "report.doc")
	session := &fakeSession{
		saveErrs: map[string]map[types.FormatCode]error{
			"report.doc": {types.FormatFilteredHTML: errors.New("export rejected")},
		},
	}
	var out bytes.Buffer

	report := Run(session, files, Options{SourceDir: dir, ExportHTML: true}, &out)

	if report.Partial() != 1 {
		t.Fatalf("partial = %d, want 1", report.Partial())
	}
	outcome := report.Outcomes[0]
	if outcome.Status != types.JobPartial {
		t.Errorf("status = %q, want %q", outcome.Status, types.JobPartial)
	}
	if len(outcome.Saved) != 1 || !strings.HasSuffix(outcome.Saved[0], "report.docx") {
		t.Errorf("saved = %v, want the docx target only", outcome.Saved)
	}
	// The successful docx stays, the failed htm must not exist.
	if _, err := os.Stat(filepath.Join(dir, "report.docx")); err != nil {
		t.Errorf("docx target should be kept: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "report.htm")); !os.IsNotExist(err) {
		t.Error("htm target should not exist after a failed export")
	}
}

func TestRunCloseFailureAfterSavesIsPartial(t *testing.T) {
	dir := t.TempDir()
	files := writeSources(t, dir, "report.doc")
	session := &fakeSession{
		closeErrs: map[string]error{"report.doc": errors.New("handle leak")},
	}
	var out bytes.Buffer

	report := Run(session, files, Options{SourceDir: dir}, &out)

	if report.Partial() != 1 {
		t.Fatalf("partial = %d, want 1: saved targets plus a close error", report.Partial())
	}
	outcome := report.Outcomes[0]
	if len(outcome.Saved) != 1 {
		t.Errorf("saved = %v, want the docx target", outcome.Saved)
	}
	if !strings.Contains(outcome.Error, "closing") {
		t.Errorf("error = %q, want the close failure recorded", outcome.Error)
	}
	// The written output is good and must be kept.
	if _, err := os.Stat(filepath.Join(dir, "report.docx")); err != nil {
		t.Errorf("docx target should be kept: %v", err)
	}
}

func TestRunCleansPartialOutput(t *testing.T) {
	dir := t.TempDir()
	files := writeSources(t, dir, "a.doc")
	session := &fakeSession{
		saveErrs: map[string]map[types.FormatCode]error{
			"a.doc": {types.FormatDocx: errors.New("disk full")},
		},
		partial: true,
	}
	var out bytes.Buffer

	report := Run(session, files, Options{SourceDir: dir}, &out)

	if report.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", report.Failed())
	}
	if _, err := os.Stat(filepath.Join(dir, "a.docx")); !os.IsNotExist(err) {
		t.Error("truncated output should be deleted after a failed save")
	}
}

func TestRunEmptyFolder(t *testing.T) {
	session := &fakeSession{}
	var out bytes.Buffer

	report := Run(session, nil, Options{}, &out)

	if report.Total() != 0 {
		t.Errorf("total = %d, want 0", report.Total())
	}
	if strings.Contains(out.String(), "processing:") {
		t.Error("empty folder must emit no per-file status lines")
	}
	if !strings.Contains(out.String(), "Batch summary:") {
		t.Error("summary line should be printed even for an empty folder")
	}
	if session.quitCalls != 1 {
		t.Errorf("quit calls = %d, want 1", session.quitCalls)
	}
}

// rejectAll is a Verifier that fails every target.
type rejectAll struct{}

func (rejectAll) Verify(string) error { return errors.New("no content extracted") }

func TestRunVerifierFailureCountsAsFailed(t *testing.T) {
	dir := t.TempDir()
	files := writeSources(t, dir, "a.doc")
	session := &fakeSession{}
	var out bytes.Buffer

	report := Run(session, files, Options{SourceDir: dir, Verifier: rejectAll{}}, &out)

	if report.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", report.Failed())
	}
	if _, err := os.Stat(filepath.Join(dir, "a.docx")); !os.IsNotExist(err) {
		t.Error("unverifiable output should be deleted")
	}
	if !strings.Contains(out.String(), "no content extracted") {
		t.Error("failure line should carry the verifier message")
	}
}
