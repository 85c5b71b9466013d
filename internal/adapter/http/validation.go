package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	domainRequest "kidsafe-backend/internal/domain/request"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// request/kid ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// content kind enum
	_ = v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		return domainRequest.ValidKind(domainRequest.Kind(fl.Field().String()))
	})
	// batch action enum
	_ = v.RegisterValidation("action", func(fl validator.FieldLevel) bool {
		a := domainRequest.Action(fl.Field().String())
		return a == domainRequest.ActionApprove || a == domainRequest.ActionDeny
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "kind":
			out = append(out, FieldError{Field: field, Message: "must be one of album, song, video, channel"})
		case "action":
			out = append(out, FieldError{Field: field, Message: "must be approve or deny"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must have at least " + e.Param() + " items"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must have at most " + e.Param() + " items"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
