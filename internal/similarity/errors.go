// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package similarity

import "errors"

// ErrUndefinedSimilarity indicates a cosine computation against an
// all-zero vector. 0/0 has no defined value, so the comparison fails
// loudly instead of returning NaN or a silent 0. A zero vector cannot
// occur for a vocabulary built by BuildVectorSet; the check guards
// against inconsistent inputs.
var ErrUndefinedSimilarity = errors.New("similarity undefined for zero vector")

// ErrUnknownCity indicates a lookup for a city that is not part of the
// vocabulary the matrix was built from.
var ErrUnknownCity = errors.New("city not in vocabulary")
