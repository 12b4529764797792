package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/plotweave/plotweave/internal/toolkit"
	weaveerrors "github.com/plotweave/plotweave/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("figformat", func(fl validator.FieldLevel) bool {
			_, err := toolkit.ParseFormat(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			_, err := zerolog.ParseLevel(strings.ToLower(fl.Field().String()))
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the
// configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return weaveerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	for _, tk := range toolkit.All() {
		section := cfg.Toolkit(tk)
		if section.Format == "" {
			continue
		}
		caps, _ := toolkit.Lookup(tk)
		format, err := toolkit.ParseFormat(section.Format)
		if err != nil {
			return weaveerrors.NewValidationError(string(tk)+".format", err.Error(), err)
		}
		if !caps.SupportsFormat(format) {
			return weaveerrors.NewValidationError(
				string(tk)+".format",
				fmt.Sprintf("%s cannot save %s", caps.DisplayName, format),
				nil,
			)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return weaveerrors.NewValidationError("config", err.Error(), err)
	}

	first := fieldErrors[0]
	return weaveerrors.NewValidationError(
		strings.ToLower(first.Namespace()),
		fmt.Sprintf("failed %q validation", first.Tag()),
		err,
	)
}
