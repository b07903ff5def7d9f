// Package validation checks API requests against their struct tags and renders the
// failures as readable English.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/money"
)

// Error lists every failed field of a request, keyed by its JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return strings.Join(msgs, "; ")
}

// Validator wraps a validator.Validate with an English translator and the custom tags
// "money" (a positive amount string), "amount" (zero allowed) and "split_type".
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator.
func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	eng := en.New()
	translator, _ := ut.New(eng, eng).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
		return nil, fmt.Errorf("failed to register translations: %w", err)
	}

	custom := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{"money", validMoney, "{0} must be a positive amount"},
		{"amount", validAmount, "{0} must be a non-negative amount"},
		{"split_type", validSplitType, "{0} must be one of equal, custom, percentage, payment"},
	}
	for _, c := range custom {
		if err := v.RegisterValidation(c.tag, c.fn); err != nil {
			return nil, fmt.Errorf("failed to register %s validation: %w", c.tag, err)
		}
		message := c.message
		tag := c.tag
		err := v.RegisterTranslation(tag, translator,
			func(ut ut.Translator) error { return ut.Add(tag, message, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return &Validator{validate: v, translator: translator}, nil
}

// Struct validates s. Field failures come back as *Error.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	out := &Error{Fields: make(map[string]string, len(errs))}
	for _, fe := range errs {
		out.Fields[fieldPath(fe)] = fe.Translate(v.translator)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func validMoney(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := money.ParsePositive(s)
	return err == nil
}

func validAmount(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := money.Parse(s)
	return err == nil
}

func validSplitType(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || models.SplitType(s).Valid()
}
