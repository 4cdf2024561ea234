// Defines the validation interface for requests.

package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by request types that can validate their
// fields. The Wrap function in the server package uses this interface
// as a type constraint so every request type provides validation.
type Validatable interface {
	Validate() error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs struct tag validation and converts failures into a
// 400 APIError naming the offending fields.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest("invalid request")
	}
	apiErr := BadRequest("request validation failed")
	for _, fe := range verrs {
		apiErr = apiErr.WithDetail(fe.Field(), fe.Tag())
	}
	return apiErr
}
