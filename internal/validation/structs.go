package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags
const notBlankTag = "notblank"

// StructValidator checks `validate` struct tags on records before they enter a store.
type StructValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewStructValidator builds a validator with english messages and JSON field names.
func NewStructValidator() *StructValidator {
	v := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlankValidation)
	_ = v.RegisterTranslation(notBlankTag, trans,
		func(t ut.Translator) error { return t.Add(notBlankTag, "{0} cannot be blank", true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(notBlankTag, fe.Field())
			return msg
		})

	return &StructValidator{validate: v, translator: trans}
}

// Struct validates a record and reports failures as a *ValidationError.
func (s *StructValidator) Struct(record interface{}) error {
	err := s.validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := NewValidationError()
	for _, fe := range fieldErrs {
		ve.AddError(fe.Field(), errorTypeForTag(fe.Tag()), fe.Translate(s.translator), fe.Value())
	}
	return ve
}

func errorTypeForTag(tag string) ValidationErrorType {
	switch tag {
	case "required", notBlankTag:
		return ErrorTypeRequired
	case "min", "max", "len":
		return ErrorTypeInvalidLength
	case "gt", "gte", "lt", "lte":
		return ErrorTypeInvalidRange
	case "email", "contains":
		return ErrorTypeInvalidFormat
	default:
		return ErrorTypeInvalidValue
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

var (
	defaultStructs     *StructValidator
	defaultStructsOnce sync.Once
)

// Struct validates a record with the shared StructValidator.
func Struct(record interface{}) error {
	defaultStructsOnce.Do(func() { defaultStructs = NewStructValidator() })
	return defaultStructs.Struct(record)
}
