// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reputation

import "errors"

// ErrUnknownEvidenceType is returned when RecordEvidence is given an
// evidence kind absent from the engine's configured rule set.
var ErrUnknownEvidenceType = errors.New("reputation: unknown evidence type")
