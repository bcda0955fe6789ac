// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/pdiddy/datashift/internal/schema"
	"github.com/pdiddy/datashift/pkg/types"
)

// sampleBaseline is the fixed v1 fixture behind Sample.
var sampleBaseline = []schema.V1Record{
	{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		CreatedAt: "2024-01-15T09:30:00Z",
		Active:    true,
	},
	{
		FirstName: "Alan",
		LastName:  "Turing",
		Email:     "alan@example.com",
		CreatedAt: "2024-02-20T14:00:00Z",
		Active:    false,
	},
}

// Sample maps the two-record fixture from v1 into version and serializes
// it as format. Output is byte-stable for the same arguments.
func (c *Converter) Sample(format types.Format, version types.Version) (string, error) {
	out, err := c.registry.Lookup(format)
	if err != nil {
		return "", stageErr(StageLookup, string(format), err)
	}
	if err := checkVersions(version); err != nil {
		return "", err
	}

	records := make([]*types.Record, 0, len(sampleBaseline))
	for _, v1 := range sampleBaseline {
		r, err := schema.FromCanonical(schema.Canonical(v1), types.V1)
		if err != nil {
			return "", stageErr(StageMap, string(types.V1), err)
		}
		records = append(records, r)
	}

	mapped, err := mapAll(records, types.V1, version)
	if err != nil {
		return "", err
	}
	return serialize(out, mapped)
}
