package config

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olusolaa/stack-sync/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and returns one user facing error listing
// every failed field.
func (c *Config) Validate(ctx context.Context) error {
	err := validate.StructCtx(ctx, c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
}
