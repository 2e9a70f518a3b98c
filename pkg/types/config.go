// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OfficeConfig holds settings for the word-processor automation session.
type OfficeConfig struct {
	// Binary overrides the LibreOffice binary name or path. Empty means
	// autodetect ("soffice" on PATH).
	Binary string `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// ConvertConfig holds settings for the batch conversion stage.
type ConvertConfig struct {
	// SourceDir is the folder scanned for legacy documents. Enumeration is
	// non-recursive.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// Pattern is the filename glob matched against each directory entry,
	// case-insensitively on the extension (default "*.doc").
	Pattern string `json:"pattern" yaml:"pattern"`

	// ExportHTML additionally saves each document as filtered HTML (.htm).
	ExportHTML bool `json:"export_html" yaml:"export_html"`

	// Verify opens each produced .docx and requires extractable content.
	Verify bool `json:"verify" yaml:"verify"`
}

// HistoryConfig holds settings for the run-history ledger.
type HistoryConfig struct {
	// Enabled records each run into the SQLite ledger.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "docbatch.db").
	Path string `json:"path" yaml:"path"`
}

// WatchConfig holds settings for scheduled batch runs.
type WatchConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string `json:"schedule" yaml:"schedule"`
}

// Config groups all stage configurations.
type Config struct {
	Office  OfficeConfig  `json:"office" yaml:"office"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	History HistoryConfig `json:"history" yaml:"history"`
	Watch   WatchConfig   `json:"watch" yaml:"watch"`
}
