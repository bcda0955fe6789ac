// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert composes codec lookup, parsing, per-record version
// mapping and serialization into single conversion calls, and drives batch
// conversion of many files.
//
// Convert and Sample are pure: they perform no I/O and keep no state
// between calls.
//
// Implements: conversion orchestrator, batch jobs and manifests.
// See DESIGN.md § internal/convert/convert.go, § internal/convert/batch.go.
package convert

import (
	"github.com/pdiddy/datashift/internal/codec"
	"github.com/pdiddy/datashift/internal/schema"
	"github.com/pdiddy/datashift/pkg/types"
)

// Options describes one conversion request.
type Options struct {
	InputText     string        `json:"inputText"`
	InputFormat   types.Format  `json:"inputFormat"`
	OutputFormat  types.Format  `json:"outputFormat"`
	InputVersion  types.Version `json:"inputVersion"`
	OutputVersion types.Version `json:"outputVersion"`
}

// Source returns the input endpoint.
func (o Options) Source() types.Endpoint {
	return types.Endpoint{Format: o.InputFormat, Version: o.InputVersion}
}

// Target returns the output endpoint.
func (o Options) Target() types.Endpoint {
	return types.Endpoint{Format: o.OutputFormat, Version: o.OutputVersion}
}

// Stats summarizes a successful conversion.
type Stats struct {
	// Records is the number of mapped records, counted before a keyvalue
	// output keeps only the first one.
	Records int    `json:"records" yaml:"records"`
	Source  string `json:"source" yaml:"source"`
	Target  string `json:"target" yaml:"target"`
}

// Result is the serialized output and its stats.
type Result struct {
	OutputText string `json:"outputText"`
	Stats      Stats  `json:"stats"`
}

// Converter runs conversions against a codec registry.
type Converter struct {
	registry *codec.Registry
}

// New returns a Converter using reg.
func New(reg *codec.Registry) *Converter {
	return &Converter{registry: reg}
}

var defaultConverter = New(codec.Default())

// Convert runs opts through the default registry.
func Convert(opts Options) (Result, error) {
	return defaultConverter.Convert(opts)
}

// Sample renders the sample fixture through the default registry.
func Sample(format types.Format, version types.Version) (string, error) {
	return defaultConverter.Sample(format, version)
}

// Convert parses opts.InputText, maps every record from the input version
// to the output version and serializes the result. It either succeeds
// completely or returns an *Error and no output.
func (c *Converter) Convert(opts Options) (Result, error) {
	in, out, err := c.codecs(opts.InputFormat, opts.OutputFormat)
	if err != nil {
		return Result{}, err
	}
	if err := checkVersions(opts.InputVersion, opts.OutputVersion); err != nil {
		return Result{}, err
	}

	parsed, err := in.Parse(opts.InputText)
	if err != nil {
		return Result{}, stageErr(StageParse, string(opts.InputFormat), err)
	}

	records, err := types.AsRecordSet(parsed)
	if err != nil {
		return Result{}, stageErr(StageShape, string(opts.InputFormat), err)
	}

	mapped, err := mapAll(records, opts.InputVersion, opts.OutputVersion)
	if err != nil {
		return Result{}, err
	}

	text, err := serialize(out, mapped)
	if err != nil {
		return Result{}, err
	}

	return Result{
		OutputText: text,
		Stats: Stats{
			Records: len(mapped),
			Source:  opts.Source().String(),
			Target:  opts.Target().String(),
		},
	}, nil
}

// codecs resolves both codecs before any work starts.
func (c *Converter) codecs(input, output types.Format) (codec.Codec, codec.Codec, error) {
	in, err := c.registry.Lookup(input)
	if err != nil {
		return nil, nil, stageErr(StageLookup, string(input), err)
	}
	out, err := c.registry.Lookup(output)
	if err != nil {
		return nil, nil, stageErr(StageLookup, string(output), err)
	}
	return in, out, nil
}

// checkVersions rejects unknown versions even when there are no records
// to map.
func checkVersions(versions ...types.Version) error {
	for _, v := range versions {
		if err := schema.Validate(v); err != nil {
			return stageErr(StageMap, string(v), err)
		}
	}
	return nil
}

// mapAll maps every record in order; the first failure aborts the call.
func mapAll(records []*types.Record, source, target types.Version) ([]*types.Record, error) {
	mapped := make([]*types.Record, 0, len(records))
	for i, r := range records {
		m, err := schema.MapVersion(r, source, target)
		if err != nil {
			return nil, &Error{Stage: StageMap, Subject: string(source) + "->" + string(target), Index: i, Err: err}
		}
		mapped = append(mapped, m)
	}
	return mapped, nil
}

// serialize applies the single-record unwrap for keyvalue output and
// encodes the result.
func serialize(out codec.Codec, mapped []*types.Record) (string, error) {
	var value any = mapped
	if out.Format() == types.FormatKeyValue {
		first := types.NewRecord()
		if len(mapped) > 0 {
			first = mapped[0]
		}
		value = first
	}
	text, err := out.Stringify(value)
	if err != nil {
		return "", stageErr(StageSerialize, string(out.Format()), err)
	}
	return text, nil
}
