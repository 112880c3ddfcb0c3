package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs the `validate` struct tags on v and returns one error per failed field.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var errs error
	for _, fe := range verrs {
		if fe.Param() != "" {
			errs = multierr.Append(errs, errors.Errorf("%s: failed '%s=%s' validation", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			errs = multierr.Append(errs, errors.Errorf("%s: failed '%s' validation", fe.Field(), fe.Tag()))
		}
	}
	return errs
}
