package document

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// structValidator is shared by every model type; validator instances cache
// struct metadata, so a single one is kept for the process.
var structValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks the validate tags of a model struct and converts the
// first violation into a schema-violation error carrying the field path.
func ValidateStruct(v any) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return NewSchemaViolation(
			fmt.Sprintf("constraint %q violated", first.Tag()),
		).WithField(first.Namespace())
	}
	return NewSchemaViolation(err.Error())
}
