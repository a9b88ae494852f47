// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package models defines the shared data types of the analysis core:
// normalized sessions, recommender and classifier outputs, and the
// data-format error sentinel shared by all ingestion paths.
//
// The package has no dependencies on other internal packages so every
// layer can exchange these types without import cycles.
package models
