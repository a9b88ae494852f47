// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate runs the struct-tag checks. A single instance caches the
// parsed tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field-level constraints via struct tags, then the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.Input.Source {
	case "json":
		if c.Input.Path == "" {
			return fmt.Errorf("input.path is required when input.source is json")
		}
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required when input.source is duckdb")
		}
	}

	return nil
}
