package core

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (in ProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SKU, validation.Required),
		validation.Field(&in.Name, validation.Required),
	)
}

func (in RecipeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
	)
}

func (in InquiryForm) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required, validation.Match(emailPattern).Error("email is invalid")),
	)
}

func validationError(err error, message string) *goerrors.Error {
	if err == nil {
		return nil
	}
	return ensureServiceErrorEnvelope(
		goerrors.FromOzzoValidation(err, message).
			WithTextCode(ServiceErrorBadInput),
	)
}
