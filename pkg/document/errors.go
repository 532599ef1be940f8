package document

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a document error for programmatic handling.
type ErrorKind string

const (
	// KindSchemaViolation indicates a structural problem: a missing required
	// field, a wrong scalar type, mismatched array lengths, or an unknown
	// field encountered during strict decoding.
	KindSchemaViolation ErrorKind = "schema_violation"

	// KindUnknownVariantTag indicates a tagged-union encoding whose tag does
	// not name any variant of the union being decoded.
	KindUnknownVariantTag ErrorKind = "unknown_variant_tag"

	// KindAmbiguousVariant indicates a tagged-union object carrying more than
	// one key, so the active variant cannot be determined without guessing.
	KindAmbiguousVariant ErrorKind = "ambiguous_variant"

	// KindUnsupportedConfiguration indicates a syntactically valid document
	// that requests a combination the engine contract does not support.
	KindUnsupportedConfiguration ErrorKind = "unsupported_configuration"

	// KindIOFailure indicates a filesystem problem while persisting or
	// loading a document.
	KindIOFailure ErrorKind = "io_failure"
)

// Error is a classified document error with optional field-path context.
type Error struct {
	// Kind is the error classification.
	Kind ErrorKind `json:"kind"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Field is the dotted path to the offending field, when known.
	Field string `json:"field,omitempty"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field=%s)", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error equality checking for errors.Is. Two document errors
// match when their kinds match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithField attaches the dotted path of the offending field.
func (e *Error) WithField(path string) *Error {
	e.Field = path
	return e
}

// NewSchemaViolation creates a new schema-violation error.
func NewSchemaViolation(message string) *Error {
	return &Error{Kind: KindSchemaViolation, Message: message}
}

// NewUnknownVariantTag creates an error for an unrecognized union tag.
func NewUnknownVariantTag(union, tag string) *Error {
	return &Error{
		Kind:    KindUnknownVariantTag,
		Message: fmt.Sprintf("unknown %s variant %q", union, tag),
	}
}

// NewAmbiguousVariant creates an error for a union object with several keys.
func NewAmbiguousVariant(union string, tags []string) *Error {
	return &Error{
		Kind:    KindAmbiguousVariant,
		Message: fmt.Sprintf("ambiguous %s encoding, multiple variant tags %v", union, tags),
	}
}

// NewUnsupportedConfiguration creates an error for a semantically unsupported
// but well-formed configuration.
func NewUnsupportedConfiguration(message string) *Error {
	return &Error{Kind: KindUnsupportedConfiguration, Message: message}
}

// NewIOFailure creates a filesystem error wrapping the underlying cause.
func NewIOFailure(message string, err error) *Error {
	return &Error{Kind: KindIOFailure, Message: message, Err: err}
}

// IsSchemaViolation returns true if the error is a schema violation.
func IsSchemaViolation(err error) bool {
	return kindOf(err) == KindSchemaViolation
}

// IsUnknownVariantTag returns true if the error is an unknown variant tag.
func IsUnknownVariantTag(err error) bool {
	return kindOf(err) == KindUnknownVariantTag
}

// IsAmbiguousVariant returns true if the error is an ambiguous variant.
func IsAmbiguousVariant(err error) bool {
	return kindOf(err) == KindAmbiguousVariant
}

// IsUnsupportedConfiguration returns true if the error is an unsupported
// configuration.
func IsUnsupportedConfiguration(err error) bool {
	return kindOf(err) == KindUnsupportedConfiguration
}

// IsIOFailure returns true if the error is a filesystem failure.
func IsIOFailure(err error) bool {
	return kindOf(err) == KindIOFailure
}

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
