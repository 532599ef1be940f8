package document

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Document is a serializable setup model. Every model in this module
// validates eagerly: Validate reports the first violated constraint, and
// Marshal refuses to emit a document that does not validate.
type Document interface {
	Validate() error
}

// Marshal validates the document and serializes it to its canonical JSON
// projection. An invalid document is never emitted.
func Marshal(d Document) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		// Marshalling of a validated document only fails when a nested
		// union has no active variant; surface it as a schema problem.
		if docErr, ok := unwrapError(err); ok {
			return nil, docErr
		}
		return nil, NewSchemaViolation("cannot encode document: " + err.Error())
	}
	return data, nil
}

// Unmarshal strictly parses data into d and validates the result. Unknown
// fields at any nesting level are a schema violation, never dropped.
func Unmarshal(data []byte, d Document) error {
	if err := UnmarshalStrict(data, d); err != nil {
		return err
	}
	return d.Validate()
}

// UnmarshalStrict parses data into v, rejecting unknown fields and trailing
// content. Nested types with their own UnmarshalJSON are expected to call
// back into this function so strictness holds at every level.
func UnmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if docErr, ok := unwrapError(err); ok {
			return docErr
		}
		if field, ok := unknownFieldName(err); ok {
			return NewSchemaViolation("unknown field").WithField(field)
		}
		return NewSchemaViolation(err.Error())
	}
	if dec.More() {
		return NewSchemaViolation("unexpected content after document")
	}
	return nil
}

// WriteFile validates d and writes its JSON projection to path. The write
// goes through a temporary file in the same directory followed by a rename,
// so a failure never leaves a partial document behind.
func WriteFile(path string, d Document) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".setup-*.json")
	if err != nil {
		return NewIOFailure("cannot create temporary file in "+dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewIOFailure("cannot write "+path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewIOFailure("cannot write "+path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewIOFailure("cannot replace "+path, err)
	}
	return nil
}

// ReadFile loads, strictly parses, and validates a document from path.
func ReadFile(path string, d Document) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewIOFailure("cannot read "+path, err)
	}
	return Unmarshal(data, d)
}

// Float64 returns a pointer to v, for setting sparse optional fields.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for setting sparse optional fields.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for setting sparse optional fields.
func Bool(v bool) *bool { return &v }

// unwrapError recovers a typed document error from the json package's
// wrapping during nested MarshalJSON/UnmarshalJSON calls.
func unwrapError(err error) (*Error, bool) {
	for err != nil {
		if docErr, ok := err.(*Error); ok {
			return docErr, true
		}
		switch e := err.(type) {
		case *json.MarshalerError:
			err = e.Err
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		default:
			return nil, false
		}
	}
	return nil, false
}

// unknownFieldName extracts the field name from the json decoder's unknown
// field error, which is only exposed through its message.
func unknownFieldName(err error) (string, bool) {
	const prefix = `json: unknown field "`
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(msg, prefix), `"`), true
}
