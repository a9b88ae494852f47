// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// writeOutputs writes the recommender and classifier outputs to their
// configured JSON files. Empty paths disable the respective file.
func (p *Pipeline) writeOutputs(result *Result) error {
	if path := p.cfg.Output.RecommendationsPath; path != "" {
		if err := writeJSON(path, result.Recommendations); err != nil {
			return fmt.Errorf("writing recommendations: %w", err)
		}
	}
	if path := p.cfg.Output.IntentsPath; path != "" {
		if err := writeJSON(path, result.Intent); err != nil {
			return fmt.Errorf("writing session intents: %w", err)
		}
	}
	return nil
}

// writeJSON marshals v and writes it atomically: to a temp file in the
// target directory, then renamed over the destination. A failed run
// never leaves a truncated output behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
