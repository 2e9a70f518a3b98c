// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office drives a word-processing application in headless mode and
// exposes it behind small Session/Document interfaces so the batch driver can
// run against a fake in tests.
// See docs/ARCHITECTURE § Automation Session.
package office

import "github.com/pdiddy/docbatch/pkg/types"

// Document is a source file opened through an automation session. SaveAs
// requests a format conversion from the word processor; Close releases the
// document without saving further changes.
type Document interface {
	// SaveAs writes the document to path in the format selected by the
	// format code. A pre-existing file at path is overwritten.
	SaveAs(path string, format types.FormatCode) error

	// Close releases the open document.
	Close() error
}

// Session is a live connection to a running word-processor instance. It is
// created once per batch run and must be released with Quit exactly once,
// regardless of per-document outcomes.
type Session interface {
	// Open prepares the file at path for conversion.
	Open(path string) (Document, error)

	// Quit shuts the word processor down and releases session resources.
	Quit() error
}
