package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// Custom validation tags
const (
	TagWheelCode   = "wheelcode"
	TagClaimStatus = "claimstatus"
)

// Validator checks request bodies against their validate tags
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator (re)builds the shared validator
func InitValidator() {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation(TagWheelCode, func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		return code == "" || wheelCodePattern.MatchString(code)
	})
	_ = v.RegisterValidation(TagClaimStatus, func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		return status == "" || domain.ClaimStatus(status).Valid()
	})
	validate = &Validator{validate: v}
}

func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

var wheelCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// jsonFieldName reports fields under the name clients sent them as
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

var fieldMessages = map[string]string{
	"required":     "This field is required",
	"email":        "Invalid email format",
	"url":          "Invalid URL",
	"hexcolor":     "Must be a hex color",
	"excludesall":  "Contains invalid characters",
	TagWheelCode:   "Invalid wheel code",
	TagClaimStatus: "Invalid claim status",
}

// FormatValidationError turns validator output into field -> message pairs
// without leaking Go struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		switch {
		case ok:
		case fe.Tag() == "max":
			msg = fmt.Sprintf("Must be at most %s characters", fe.Param())
		case fe.Tag() == "min":
			msg = fmt.Sprintf("Must be at least %s characters", fe.Param())
		default:
			msg = "Invalid value"
		}
		out[fe.Field()] = msg
	}
	return out
}
