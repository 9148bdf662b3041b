// AngelaMos | 2026
// phone.go

package user

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Bangladeshi mobile numbers: operator prefix 013-019, eight more digits.
var bdPhoneRegex = regexp.MustCompile(`^(?:\+8801|8801|01)[3-9]\d{8}$`)

var nonDigits = regexp.MustCompile(`\D`)

func IsValidPhone(phone string) bool {
	return bdPhoneRegex.MatchString(phone)
}

// NormalizePhone canonicalizes an accepted number to its +880 form so
// the unique index sees one spelling per subscriber.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")

	switch {
	case len(digits) > 0 && digits[0] == '0':
		return "+880" + digits[1:]
	case len(digits) >= 3 && digits[:3] == "880":
		return "+880" + digits[3:]
	default:
		return "+880" + digits
	}
}

// ValidBDPhone is the `bd_phone` validator tag. Empty values pass so the
// field stays optional; pair with required when it is not.
func ValidBDPhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsValidPhone(value)
}
