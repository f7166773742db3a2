package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator behind a small API.
type Validator struct {
	cli *validator.Validate
}

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string
	Message string
}

// New returns a ready Validator.
func New() *Validator {
	return &Validator{
		cli: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateStruct checks s against its validate tags and returns one entry
// per failing field, nil when everything passes.
func (v *Validator) ValidateStruct(s interface{}) []ValidationError {
	err := v.cli.Struct(s)
	if err == nil {
		return nil
	}
	var out []ValidationError
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, ValidationError{
			Field:   fe.StructField(),
			Message: fe.Error(),
		})
	}
	return out
}
