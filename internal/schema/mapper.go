// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"fmt"
	"strings"

	"github.com/pdiddy/datashift/pkg/types"
)

// decode reads r in the wire shape of version.
func decode(r *types.Record, version types.Version) (wireShape, error) {
	switch version {
	case types.V1:
		return decodeV1(r), nil
	case types.V2:
		return decodeV2(r), nil
	case types.V3:
		return decodeV3(r), nil
	default:
		return nil, unsupported(version)
	}
}

// encode builds the wire shape of version from m.
func encode(m Canonical, version types.Version) (wireShape, error) {
	switch version {
	case types.V1:
		return V1Record(m), nil
	case types.V2:
		return V2Record{
			FullName:     joinName(m.FirstName, m.LastName),
			EmailAddress: m.Email,
			CreatedAt:    m.CreatedAt,
			Status:       statusString(m.Active),
		}, nil
	case types.V3:
		var v V3Record
		v.Name.First = m.FirstName
		v.Name.Last = m.LastName
		v.Contact.Email = m.Email
		v.Meta.CreatedAt = m.CreatedAt
		v.Meta.Active = m.Active
		return v, nil
	default:
		return nil, unsupported(version)
	}
}

func unsupported(version types.Version) error {
	return fmt.Errorf("%w %q", types.ErrUnsupportedVersion, string(version))
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// ToCanonical reads record in the given version's shape. Absent fields
// default to "" or false.
func ToCanonical(record *types.Record, version types.Version) (Canonical, error) {
	w, err := decode(record, version)
	if err != nil {
		return Canonical{}, err
	}
	return w.canonical(), nil
}

// FromCanonical renders m in the given version's shape.
func FromCanonical(m Canonical, version types.Version) (*types.Record, error) {
	w, err := encode(m, version)
	if err != nil {
		return nil, err
	}
	return w.record(), nil
}

// MapVersion converts record from source to target through the canonical
// model.
func MapVersion(record *types.Record, source, target types.Version) (*types.Record, error) {
	m, err := ToCanonical(record, source)
	if err != nil {
		return nil, err
	}
	return FromCanonical(m, target)
}

// Validate fails with types.ErrUnsupportedVersion when version is unknown.
func Validate(version types.Version) error {
	_, err := encode(Canonical{}, version)
	return err
}
