// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
)

// Stage names the pipeline step a conversion failed in.
type Stage string

const (
	StageLookup    Stage = "lookup"
	StageParse     Stage = "parse"
	StageShape     Stage = "shape"
	StageMap       Stage = "map"
	StageSerialize Stage = "serialize"
)

// Error wraps a conversion failure with the stage and the identifier
// (format or version) responsible. Index is the zero-based record position
// for record-level failures and -1 otherwise.
type Error struct {
	Stage   Stage
	Subject string
	Index   int
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Stage, e.Subject)
	if e.Index >= 0 {
		fmt.Fprintf(&b, " (record %d)", e.Index)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, subject string, err error) *Error {
	return &Error{Stage: stage, Subject: subject, Index: -1, Err: err}
}
