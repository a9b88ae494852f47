// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package models

import "errors"

// ErrDataFormat indicates a malformed session record: an empty city list,
// a duplicate session id, or a row that cannot be parsed. Data-format
// failures are structural, never retried, and always surfaced to the
// caller rather than coerced into a default row.
var ErrDataFormat = errors.New("malformed session data")
