package validation

import (
	"strings"
	"time"

	"onegoal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

// validate is the shared instance; custom rules are registered once.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("dateymd", validateDateYMD)
	_ = validate.RegisterValidation("clockhm", validateClockHM)
}

// validateDateYMD accepts day keys in YYYY-MM-DD form.
func validateDateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateClockHM accepts wall-clock strings in 24h HH:MM form.
func validateClockHM(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

// Struct validates v against its struct tags and returns a tagged
// validation-failed error naming the offending fields.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(apperrors.CodeValidationFailed, err, "validation failed")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return apperrors.New(apperrors.CodeValidationFailed, "validation failed: %s", strings.Join(fields, ", "))
}

// Var validates a single value against a tag expression.
func Var(v interface{}, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return apperrors.New(apperrors.CodeValidationFailed, "validation failed: %s", tag)
	}
	return nil
}

// Date parses a YYYY-MM-DD day key, rejecting anything else.
func Date(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeValidationFailed, "invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}

// Clock parses an HH:MM wall-clock value.
func Clock(value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeValidationFailed, "invalid time %q, want HH:MM", value)
	}
	return t, nil
}
