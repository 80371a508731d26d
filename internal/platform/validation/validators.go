package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 20
	passwordSpecials  = "!@#$%^&*"
)

// Register installs the custom rules on gin's binding validator. Call once at startup.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return RegisterOn(v)
}

// RegisterOn installs the custom rules on v.
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("strongpassword", strongPassword); err != nil {
		return fmt.Errorf("register strongpassword: %w", err)
	}
	if err := v.RegisterValidation("userstatus", userStatus); err != nil {
		return fmt.Errorf("register userstatus: %w", err)
	}
	return nil
}

func strongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func userStatus(fl validator.FieldLevel) bool {
	return domain.UserStatus(fl.Field().String()).IsValid()
}

// IsStrongPassword requires 8-20 characters with an ASCII uppercase letter, an
// ASCII digit and one of !@#$%^&*.
func IsStrongPassword(password string) bool {
	if n := len([]rune(password)); n < passwordMinLength || n > passwordMaxLength {
		return false
	}

	var upper, digit, special bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && digit && special
}

// FieldErrors flattens binding errors into field -> message, or nil when err
// is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "strongpassword":
		return "must be 8-20 characters with an uppercase letter, a digit and one of !@#$%^&*"
	case "userstatus":
		return "must be one of ACTIVE, INACTIVE"
	default:
		return "is invalid"
	}
}
