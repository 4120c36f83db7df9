package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bankledger/internal/models"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("category_id", validateCategoryID)
	_ = v.RegisterValidation("bsb", validateBSB)
	_ = v.RegisterValidation("tax_type", validateTaxType)
	_ = v.RegisterValidation("amount_operator", validateAmountOperator)
	_ = v.RegisterValidation("filter_type", validateFilterType)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateCategoryID validates that an id is a dotted numeric path ("2.1.1").
// The internal-transfer sentinel "0" is rejected.
func validateCategoryID(fl validator.FieldLevel) bool {
	return models.IsValidCategoryID(fl.Field().String())
}

// validateBSB validates an AU bank-state-branch code: six digits, optionally
// hyphenated as XXX-XXX
func validateBSB(fl validator.FieldLevel) bool {
	return models.IsValidBSB(fl.Field().String())
}

// validateTaxType validates that the tax type is GST, FRE or NT
func validateTaxType(fl validator.FieldLevel) bool {
	return models.IsValidTaxType(fl.Field().String())
}

// validateAmountOperator validates the rule amount operator vocabulary
func validateAmountOperator(fl validator.FieldLevel) bool {
	return models.IsValidAmountOperator(fl.Field().String())
}

// validateFilterType validates the transaction list filter vocabulary
func validateFilterType(fl validator.FieldLevel) bool {
	return models.IsValidFilterType(fl.Field().String())
}
