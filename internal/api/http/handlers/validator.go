package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/list-manager/pkg/util/errorutil"
)

// RequestValidator wraps go-playground/validator and reports failures as
// validation errors keyed by JSON field name.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator returns a validator that names fields by their json tag.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

// Validate checks a decoded request body.
func (rv *RequestValidator) Validate(req any) error {
	err := rv.v.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fieldError(fe)
	}
	return apperrors.NewValidationError("invalid payload", details)
}

// Bind decodes the body into req and validates it.
func (rv *RequestValidator) Bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return rv.Validate(req)
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid id"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
