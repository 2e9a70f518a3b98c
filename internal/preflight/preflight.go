// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preflight validates candidate source files before a batch run.
// A genuine legacy Word document is an OLE compound file; anything else in
// the folder with a .doc name (renamed text files, truncated downloads) will
// make the word processor fail mid-batch, so it is cheaper to find them first.
package preflight

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/docbatch/internal/batch"
)

// oleMagic is the compound-file signature at the start of every legacy .doc.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Result summarizes a pre-flight run.
type Result struct {
	OK  int
	Bad int
}

// Total returns the number of files checked.
func (r Result) Total() int { return r.OK + r.Bad }

// HasFailures reports whether any file failed the check.
func (r Result) HasFailures() bool { return r.Bad > 0 }

// Check validates every file in dir matching pattern, printing an ok/bad
// line per file and a closing summary to w.
func Check(dir, pattern string, w io.Writer) (Result, error) {
	files, err := batch.Discover(dir, pattern)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, file := range files {
		name := filepath.Base(file)
		if reason := checkFile(file); reason != "" {
			res.Bad++
			fmt.Fprintf(w, "bad: %s (%s)\n", name, reason)
			continue
		}
		res.OK++
		fmt.Fprintf(w, "ok:  %s\n", name)
	}

	fmt.Fprintf(w, "\nPre-flight summary: %d ok, %d bad (total: %d)\n",
		res.OK, res.Bad, res.Total())
	return res, nil
}

// checkFile returns a non-empty reason when the file cannot be a legacy
// Word document.
func checkFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()

	header := make([]byte, len(oleMagic))
	switch _, err := io.ReadFull(f, header); err {
	case nil:
	case io.EOF:
		return "empty file"
	case io.ErrUnexpectedEOF:
		return "truncated header"
	default:
		return err.Error()
	}

	if !bytes.Equal(header, oleMagic) {
		return "not an OLE compound document"
	}
	return ""
}
