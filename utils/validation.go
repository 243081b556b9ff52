package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

// RegisterValidations hooks custom rules into the validator Gin binds with.
func RegisterValidations() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDate(fl.Field().String())
			return err == nil
		})
	}
	return nil
}

func ValidatePassword(password string) bool {
	if !containsUppercase(password) {
		return false
	}

	if !containsLowercase(password) {
		return false
	}

	if !containsDigit(password) {
		return false
	}

	if len(password) < 8 {
		return false
	}

	return true
}

func containsUppercase(s string) bool {
	return regexp.MustCompile(`[A-Z]`).MatchString(s)
}

func containsLowercase(s string) bool {
	return regexp.MustCompile(`[a-z]`).MatchString(s)
}

func containsDigit(s string) bool {
	return regexp.MustCompile(`\d`).MatchString(s)
}
