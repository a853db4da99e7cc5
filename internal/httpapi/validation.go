package httpapi

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// checkStruct runs struct-tag validation and flattens the failures.
func checkStruct(obj any) []validationError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var out []validationError
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, validationError{Field: fe.Field(), Message: fieldErrorMsg(fe), Type: fe.Tag()})
	}
	return out
}

func fieldErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	default:
		return "Invalid value"
	}
}
