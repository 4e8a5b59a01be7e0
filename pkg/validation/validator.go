// Package validation configures the validator used by Gin's binding and maps
// binding errors to field-level messages, plus the password complexity policy.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yogapratama/leasedrive/pkg/apperr"
)

// PasswordSymbols is the accepted special-character set for passwords.
const PasswordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"

const (
	PasswordMinLen = 8
	PasswordMaxLen = 50
)

// Init configures the global validator used by Gin's binding.
// Errors report JSON tag names instead of struct field names.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
			return CheckPassword(fl.Field().String()) == nil
		})
	}
}

// CheckPassword enforces the complexity policy: length 8-50, at least one
// uppercase letter and one symbol from PasswordSymbols.
func CheckPassword(plain string) error {
	n := len(plain)
	if n < PasswordMinLen || n > PasswordMaxLen {
		return apperr.NewValidation("password", "must be 8-50 characters")
	}
	var hasUpper, hasSymbol bool
	for _, r := range plain {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(PasswordSymbols, r) {
			hasSymbol = true
		}
	}
	if !hasUpper {
		return apperr.NewValidation("password", "must contain an uppercase letter")
	}
	if !hasSymbol {
		return apperr.NewValidation("password", "must contain a special character")
	}
	return nil
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for the API error envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "eqfield":
		return "must match " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "strongpwd":
		return "must be 8-50 characters with an uppercase letter and a special character"
	default:
		if param != "" {
			return "failed '" + tag + "' with parameter '" + param + "'"
		}
		return "failed '" + tag + "'"
	}
}
