// Package validation holds the declarative input schemas accepted at the API
// boundary and the field rules they share.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"childrenlk/internal/models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// PhoneFormatMessage is returned for every phone number that is not +94 followed by nine digits.
const PhoneFormatMessage = "Phone number must be in the format +94XXXXXXXXX"

const passwordMessage = "Password must be 8-128 characters and contain at least one letter and one digit"

var (
	validate   *validator.Validate
	translator ut.Translator

	phoneRegex = regexp.MustCompile(`^\+94\d{9}$`)

	notBlankTag = "notblank"
	phoneTag    = "lkphone"
	httpURLTag  = "httpurl"
	passwordTag = "password"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	_ = validate.RegisterValidation(httpURLTag, httpURLValidation)
	_ = validate.RegisterValidation(passwordTag, passwordValidation)

	validate.RegisterStructValidation(mediaStructValidation, MediaInput{})
	validate.RegisterStructValidation(eventStructValidation, EventInput{})

	registerTranslation(notBlankTag, "{0} cannot be blank")
	registerTranslation(phoneTag, PhoneFormatMessage)
	registerTranslation(httpURLTag, "{0} must be an absolute http(s) URL")
	registerTranslation(passwordTag, passwordMessage)
	registerTranslation(textContentTag, "textContent is required for articles and poems")
	registerTranslation(filesTag, "at least one file is required for image, video and audio content")
	registerTranslation(endDateTag, "endDate must not be before startDate")
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates v against its `validate` tags and struct-level rules. The
// returned error is a VALIDATION_ERROR AppError naming every failing field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.NewValidationError("Invalid request body")
	}

	messages := make([]string, 0, len(fieldErrs))
	seen := make(map[string]struct{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Translate(translator)
		if _, ok := seen[msg]; ok {
			continue
		}
		seen[msg] = struct{}{}
		messages = append(messages, msg)
	}
	sort.Strings(messages)

	return models.NewValidationError(strings.Join(messages, "; "))
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func phoneValidation(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func httpURLValidation(fl validator.FieldLevel) bool {
	return isHTTPURL(fl.Field().String())
}

func passwordValidation(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String()) == nil
}

// IsValidPhone reports whether s is "+94" followed by exactly nine digits.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// ValidatePhone returns a VALIDATION_ERROR with the fixed phone message when s is invalid.
func ValidatePhone(s string) error {
	if !IsValidPhone(s) {
		return models.NewValidationError(PhoneFormatMessage)
	}
	return nil
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if n := len([]rune(password)); n < 8 || n > 128 {
		return models.NewValidationError(passwordMessage)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return models.NewValidationError(passwordMessage)
	}
	return nil
}
