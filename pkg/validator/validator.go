package validator

import (
	"github.com/go-playground/validator/v10"

	"go-product-catalog/internal/model"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for the closed product kind enumeration
	validate.RegisterValidation("product_kind", func(fl validator.FieldLevel) bool {
		if kind, ok := fl.Field().Interface().(model.ProductKind); ok {
			return kind.Valid()
		}
		return model.ProductKind(fl.Field().String()).Valid()
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
