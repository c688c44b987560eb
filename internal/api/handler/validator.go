package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nutrition5k/nutrition-api/internal/pkg/dataurl"
)

// Decoded image byte-length bounds enforced after the data-URL shape check.
const (
	minImageBytes = 100
	maxImageBytes = 10 * 1024 * 1024
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator, with the image data-URL rule registered.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("image_dataurl", validImageDataURL)
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// validImageDataURL checks the base64 data-URL shape and then refines
// on the decoded byte length: 100 bytes ≤ len < 10 MiB.
func validImageDataURL(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	raw, err := dataurl.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) >= minImageBytes && len(raw) < maxImageBytes
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "image_dataurl":
		return field + " must be a base64 image data URL between 100 bytes and 10MB"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
