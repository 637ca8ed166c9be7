package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

// Location IDs are either aisle-style (A-01-04-2) or block-style (101, DOCK-3).
var locIDPattern = regexp.MustCompile(`^([A-Z]+-\d{2}-\d{2}-\d+|[A-Z]+-\d+|\d+)$`)

func init() {
	// Register custom validation for location identifiers
	validate.RegisterValidation("loc_id", func(fl validator.FieldLevel) bool {
		return locIDPattern.MatchString(fl.Field().String())
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
