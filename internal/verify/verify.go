// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify reads converted Open-XML documents back to confirm the word
// processor produced something usable.
package verify

import (
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// Checker validates .docx output by opening it and requiring extractable
// body content.
type Checker struct{}

// Verify opens the document at path and checks that it carries content.
func (Checker) Verify(path string) error {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	defer doc.Close()

	content := strings.TrimSpace(doc.Editable().GetContent())
	if content == "" {
		return fmt.Errorf("no content extracted from %s", path)
	}
	return nil
}
