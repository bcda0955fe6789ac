// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy shared by the codecs, the version mapper and the
// orchestrator. Callers match with errors.Is; the wrapping error names the
// offending identifier and stage.
var (
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrParse              = errors.New("parse error")
	ErrInvalidInputShape  = errors.New("invalid input shape")
)
