package config

import (
	"errors"
	"fmt"
	"sync"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var (
	validate     *gvalidator.Validate
	validateOnce sync.Once
)

func validator() *gvalidator.Validate {
	validateOnce.Do(func() {
		validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
	})
	return validate
}

func validateStruct(v any) error {
	if err := validator().Struct(v); err != nil {
		return formatError(err)
	}
	return nil
}

func formatError(err error) error {
	var verrs gvalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Join(ErrInvalidConfig, err)
	}

	errs := make([]error, 0, len(verrs)+1)
	errs = append(errs, ErrInvalidConfig)
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf(
			"'%s': value '%v' does not meet the requirements for the '%s' validation",
			fe.Namespace(), fe.Value(), fe.Tag(),
		))
	}
	return errors.Join(errs...)
}
