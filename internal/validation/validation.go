package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Fields flattens validator errors into field → failed tag. The boolean is
// false when err is not a validation failure (e.g. a nil or non-struct input).
func Fields(err error) (map[string]string, bool) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil, false
	}
	out := make(map[string]string, len(vErrs))
	for _, fieldErr := range vErrs {
		out[fieldErr.Field()] = fieldErr.Tag()
	}
	return out, true
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsMap, ok := Fields(validationErrs)
	if !ok {
		errsMap = map[string]string{"body": "invalid"}
	}
	return FieldsToJson(errsMap)
}

func FieldsToJson(fields map[string]string) (string, error) {
	errsJson, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
