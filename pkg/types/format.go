// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared domain and configuration types for docbatch.
package types

import "strconv"

// FormatCode is a numeric save-format identifier understood by the word
// processor's save routine. The values are the Word automation constants and
// must stay bit-exact for compatibility with the original automation API.
type FormatCode int

const (
	// FormatDocx is the Open-XML document format (.docx), wdFormatXMLDocument.
	FormatDocx FormatCode = 16

	// FormatFilteredHTML is the filtered web-page format (.htm),
	// wdFormatFilteredHTML.
	FormatFilteredHTML FormatCode = 10
)

// String returns a short human-readable name for log lines.
func (f FormatCode) String() string {
	switch f {
	case FormatDocx:
		return "docx"
	case FormatFilteredHTML:
		return "filtered-html"
	default:
		return "format(" + strconv.Itoa(int(f)) + ")"
	}
}
