// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package session

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/viatrixhq/viatrix/internal/models"
)

// JSONSource reads session records from a JSON file containing an array
// of records.
type JSONSource struct {
	path string
}

// NewJSONSource creates a source backed by the given file path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

// Records decodes the whole file in one pass.
func (s *JSONSource) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", models.ErrDataFormat, s.path, err)
	}
	// One array per file. Anything after it is a malformed export, not
	// ignorable padding.
	if dec.More() {
		return nil, fmt.Errorf("%w: decoding %s: trailing data after session array", models.ErrDataFormat, s.path)
	}

	return records, nil
}

// Ensure interface compliance.
var _ Source = (*JSONSource)(nil)
