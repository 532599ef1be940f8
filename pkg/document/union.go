package document

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Variant is one alternative of a tagged union. The tag is the variant name
// used on the wire; it doubles as the bare-string encoding for variants that
// carry no payload.
type Variant interface {
	VariantTag() string
}

// Union describes the closed variant set of one tagged-union type and
// implements the engine's externally tagged wire convention for it:
//
//   - a unit variant encodes as the bare string of its tag, e.g. "NoPower";
//   - a payload variant encodes as a single-key object whose key is the tag
//     and whose value is the variant's own projection, e.g.
//     {"Smoothing": {...}} or {"MaxInducedVelocityMagnitudeRatio": 1.0};
//   - unions with an explicit disabled state register the sentinel string
//     "None" as a unit variant, which is distinct from omitting the field.
//
// The third accepted input shape, an already-constructed variant value set
// programmatically on a builder, never reaches Decode: it is stored directly
// in the owning field and only revalidated.
type Union struct {
	name     string
	units    map[string]func() Variant
	payloads map[string]func() Variant
}

// NewUnion creates an empty union description. The name is used in error
// messages only.
func NewUnion(name string) *Union {
	return &Union{
		name:     name,
		units:    make(map[string]func() Variant),
		payloads: make(map[string]func() Variant),
	}
}

// Unit registers a payload-less variant under the given tag.
func (u *Union) Unit(tag string, fn func() Variant) *Union {
	u.units[tag] = fn
	return u
}

// Payload registers a payload-bearing variant under the given tag. The
// constructor must return a pointer so the payload can be decoded into it.
func (u *Union) Payload(tag string, fn func() Variant) *Union {
	u.payloads[tag] = fn
	return u
}

// Encode serializes the active variant following the wire convention.
func (u *Union) Encode(v Variant) ([]byte, error) {
	if v == nil {
		return nil, NewSchemaViolation(u.name + " has no active variant")
	}
	tag := v.VariantTag()
	if _, ok := u.units[tag]; ok {
		return json.Marshal(tag)
	}
	if _, ok := u.payloads[tag]; !ok {
		return nil, NewUnknownVariantTag(u.name, tag)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	key, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(payload)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode resolves a raw node to a variant. A bare string resolves to a unit
// variant, a single-key object to a payload variant parsed strictly from its
// value. An object with several keys is ambiguous and rejected rather than
// guessed at.
func (u *Union) Decode(data []byte) (Variant, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, NewSchemaViolation(u.name + " is empty")
	}

	switch trimmed[0] {
	case '"':
		var tag string
		if err := json.Unmarshal(trimmed, &tag); err != nil {
			return nil, NewSchemaViolation(u.name + ": malformed variant string")
		}
		if fn, ok := u.units[tag]; ok {
			return fn(), nil
		}
		if _, ok := u.payloads[tag]; ok {
			return nil, NewSchemaViolation(u.name + " variant " + tag + " requires a payload")
		}
		return nil, NewUnknownVariantTag(u.name, tag)

	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, NewSchemaViolation(u.name + ": malformed variant object")
		}
		if len(raw) == 0 {
			return nil, NewSchemaViolation(u.name + ": empty variant object")
		}
		if len(raw) > 1 {
			tags := make([]string, 0, len(raw))
			for tag := range raw {
				tags = append(tags, tag)
			}
			sort.Strings(tags)
			return nil, NewAmbiguousVariant(u.name, tags)
		}
		for tag, payload := range raw {
			fn, ok := u.payloads[tag]
			if !ok {
				if _, isUnit := u.units[tag]; isUnit {
					return nil, NewSchemaViolation(u.name + " unit variant " + tag + " must be encoded as a bare string")
				}
				return nil, NewUnknownVariantTag(u.name, tag)
			}
			v := fn()
			if err := UnmarshalStrict(payload, v); err != nil {
				if docErr, ok := err.(*Error); ok && docErr.Field != "" {
					docErr.Field = tag + "." + docErr.Field
				}
				return nil, err
			}
			return v, nil
		}
	}

	return nil, NewSchemaViolation(u.name + ": expected a variant string or a single-key variant object")
}
