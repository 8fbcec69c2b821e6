package httpserver

import (
	"errors"
	"reflect"
	"strings"

	"movieinfo/errs"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return errs.Invalid(fieldErrors(err)...)
	}
	return nil
}

func fieldErrors(err error) []errs.FieldError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	fields := make([]errs.FieldError, 0, len(ves))
	for _, fe := range ves {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		fields = append(fields, errs.FieldError{Field: field, Error: describeTag(fe)})
	}
	return fields
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "printascii":
		return "must contain printable ASCII characters only"
	default:
		return "failed on " + fe.Tag()
	}
}
