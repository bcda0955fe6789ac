// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"strings"

	"github.com/pdiddy/datashift/pkg/types"
)

// wireShape is implemented by every version's typed representation.
type wireShape interface {
	canonical() Canonical
	record() *types.Record
}

// V1Record is the flat snake_case shape.
type V1Record struct {
	FirstName string
	LastName  string
	Email     string
	CreatedAt string
	Active    bool
}

func decodeV1(r *types.Record) V1Record {
	active, _ := r.Get("active")
	return V1Record{
		FirstName: text(r.Get("first_name")),
		LastName:  text(r.Get("last_name")),
		Email:     text(r.Get("email")),
		CreatedAt: text(r.Get("created_at")),
		Active:    NormalizeBoolean(active),
	}
}

func (v V1Record) canonical() Canonical {
	return Canonical(v)
}

func (v V1Record) record() *types.Record {
	return types.RecordOf(
		types.Field{Key: "first_name", Value: v.FirstName},
		types.Field{Key: "last_name", Value: v.LastName},
		types.Field{Key: "email", Value: v.Email},
		types.Field{Key: "created_at", Value: v.CreatedAt},
		types.Field{Key: "active", Value: v.Active},
	)
}

// V2Record is the camelCase shape with a combined name and a status string.
type V2Record struct {
	FullName     string
	EmailAddress string
	CreatedAt    string
	Status       string
}

const (
	statusActive   = "active"
	statusInactive = "inactive"
)

func decodeV2(r *types.Record) V2Record {
	// status arrives as "active"/"inactive" or as any boolean-like value.
	status, _ := r.Get("status")
	return V2Record{
		FullName:     text(r.Get("fullName")),
		EmailAddress: text(r.Get("emailAddress")),
		CreatedAt:    text(r.Get("createdAt")),
		Status:       statusString(NormalizeBoolean(status)),
	}
}

func statusString(active bool) string {
	if active {
		return statusActive
	}
	return statusInactive
}

func (v V2Record) canonical() Canonical {
	var first, last string
	if parts := strings.Fields(v.FullName); len(parts) > 0 {
		first = parts[0]
		last = strings.Join(parts[1:], " ")
	}
	return Canonical{
		FirstName: first,
		LastName:  last,
		Email:     v.EmailAddress,
		CreatedAt: v.CreatedAt,
		Active:    v.Status == statusActive,
	}
}

func (v V2Record) record() *types.Record {
	return types.RecordOf(
		types.Field{Key: "fullName", Value: v.FullName},
		types.Field{Key: "emailAddress", Value: v.EmailAddress},
		types.Field{Key: "createdAt", Value: v.CreatedAt},
		types.Field{Key: "status", Value: v.Status},
	)
}

// V3Record is the nested shape: name.{first,last}, contact.email and
// meta.{createdAt,active}.
type V3Record struct {
	Name struct {
		First string
		Last  string
	}
	Contact struct {
		Email string
	}
	Meta struct {
		CreatedAt string
		Active    bool
	}
}

func decodeV3(r *types.Record) V3Record {
	name, contact, meta := nested(r, "name"), nested(r, "contact"), nested(r, "meta")

	var v V3Record
	v.Name.First = text(name.Get("first"))
	v.Name.Last = text(name.Get("last"))
	v.Contact.Email = text(contact.Get("email"))
	v.Meta.CreatedAt = text(meta.Get("createdAt"))
	active, _ := meta.Get("active")
	v.Meta.Active = NormalizeBoolean(active)
	return v
}

// nested returns the record stored under key. Flat formats (csv, keyvalue)
// carry nested records as JSON object text, which is decoded here. Anything
// else yields nil, whose fields all read as missing.
func nested(r *types.Record, key string) *types.Record {
	v, _ := r.Get(key)
	if s, ok := v.(string); ok {
		decoded, err := types.DecodeJSONDocument([]byte(s))
		if err != nil {
			return nil
		}
		v = decoded
	}
	rec, _ := v.(*types.Record)
	return rec
}

func (v V3Record) canonical() Canonical {
	return Canonical{
		FirstName: v.Name.First,
		LastName:  v.Name.Last,
		Email:     v.Contact.Email,
		CreatedAt: v.Meta.CreatedAt,
		Active:    v.Meta.Active,
	}
}

func (v V3Record) record() *types.Record {
	return types.RecordOf(
		types.Field{Key: "name", Value: types.RecordOf(
			types.Field{Key: "first", Value: v.Name.First},
			types.Field{Key: "last", Value: v.Name.Last},
		)},
		types.Field{Key: "contact", Value: types.RecordOf(
			types.Field{Key: "email", Value: v.Contact.Email},
		)},
		types.Field{Key: "meta", Value: types.RecordOf(
			types.Field{Key: "createdAt", Value: v.Meta.CreatedAt},
			types.Field{Key: "active", Value: v.Meta.Active},
		)},
	)
}
