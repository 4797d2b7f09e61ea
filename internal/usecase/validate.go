package usecase

import (
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

func validateInput(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return apperror.Validation(validation.FormatValidationErrors(err))
	}
	return nil
}
