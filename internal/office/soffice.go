// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docbatch/pkg/types"
)

// defaultBinary is the LibreOffice binary looked up on PATH when no override
// is configured.
const defaultBinary = "soffice"

// sofficeFilter maps a format code onto the convert-to token LibreOffice
// expects: the output extension plus the export filter name.
type sofficeFilter struct {
	ext    string
	filter string
}

var sofficeFilters = map[types.FormatCode]sofficeFilter{
	types.FormatDocx:         {ext: "docx", filter: "MS Word 2007 XML"},
	types.FormatFilteredHTML: {ext: "htm", filter: "HTML (StarWriter)"},
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

var defaultExec executor = &osExecutor{}

// session implements Session on top of headless LibreOffice invocations.
// Each SaveAs runs one soffice process with an isolated user profile, so a
// desktop LibreOffice owned by the user is never disturbed.
type session struct {
	bin     string
	profile string
	exec    executor
}

// Launch verifies that the word processor is available and prepares a
// headless session. A Launch failure is fatal for the whole batch run: no
// job can proceed without the application.
func Launch(cfg types.OfficeConfig) (Session, error) {
	return launch(cfg, defaultExec)
}

func launch(cfg types.OfficeConfig, exec executor) (Session, error) {
	bin := cfg.Binary
	if bin == "" {
		bin = defaultBinary
	}

	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("word processor %s not found on PATH: %w", bin, err)
	}
	if err := exec.RunSilent(bin, "--headless", "--version"); err != nil {
		return nil, fmt.Errorf("word processor %s not operational: %w", bin, err)
	}

	profile, err := os.MkdirTemp("", "docbatch-profile-")
	if err != nil {
		return nil, fmt.Errorf("creating session profile: %w", err)
	}

	return &session{bin: bin, profile: profile, exec: exec}, nil
}

func (s *session) Open(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening %s: is a directory", path)
	}
	return &document{session: s, source: path}, nil
}

func (s *session) Quit() error {
	return os.RemoveAll(s.profile)
}

// document implements Document for one source file. The underlying soffice
// process is per-invocation, so Close has nothing to release.
type document struct {
	session *session
	source  string
}

func (d *document) SaveAs(path string, format types.FormatCode) error {
	f, ok := sofficeFilters[format]
	if !ok {
		return fmt.Errorf("saving %s: unknown format code %d", path, int(format))
	}

	outDir := filepath.Dir(path)
	args := []string{
		"--headless", "--norestore",
		"-env:UserInstallation=file://" + d.session.profile,
		"--convert-to", f.ext + ":" + f.filter,
		"--outdir", outDir,
		d.source,
	}
	if err := d.session.exec.RunSilent(d.session.bin, args...); err != nil {
		return fmt.Errorf("converting %s to %s: %w", d.source, f.ext, err)
	}

	// soffice names the output after the source base name inside outdir,
	// and can exit zero without producing anything.
	base := strings.TrimSuffix(filepath.Base(d.source), filepath.Ext(d.source))
	produced := filepath.Join(outDir, base+"."+f.ext)
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("converting %s: no output produced at %s", d.source, produced)
	}
	if produced != path {
		if err := os.Rename(produced, path); err != nil {
			return fmt.Errorf("renaming %s to %s: %w", produced, path, err)
		}
	}
	return nil
}

func (d *document) Close() error {
	return nil
}
