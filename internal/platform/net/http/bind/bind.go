// Package bind decodes JSON request bodies and validates them with
// go-playground/validator, translating the first failure into a perr error
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "residences/internal/platform/errors"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// MaxBodyBytes caps request bodies
const MaxBodyBytes = 1 << 20

// FieldLevel is handed to custom validation funcs
type FieldLevel = validator.FieldLevel

// Validator bundles the validate instance with its translators
type Validator struct {
	v   *validator.Validate
	uni *ut.UniversalTranslator
}

var (
	once sync.Once
	std  *Validator
)

// Get returns the shared validator
func Get() *Validator {
	once.Do(func() { std = newValidator() })
	return std
}

func newValidator() *Validator {
	enLoc, esLoc := en.New(), es.New()
	uni := ut.New(enLoc, enLoc, esLoc)

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "":
			return f.Name
		case "-":
			return ""
		}
		return name
	})

	enT, _ := uni.GetTranslator("en")
	esT, _ := uni.GetTranslator("es")
	_ = en_translations.RegisterDefaultTranslations(v, enT)
	_ = es_translations.RegisterDefaultTranslations(v, esT)

	for _, m := range []struct {
		trans ut.Translator
		tag   string
		text  string
	}{
		{enT, "min", "{0} must be at least {1}"},
		{enT, "max", "{0} must be at most {1}"},
		{enT, "notblank", "{0} must not be blank"},
		{esT, "notblank", "{0} no puede estar vacío"},
	} {
		registerShort(v, m.trans, m.tag, m.text)
	}
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v, uni: uni}
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// RegisterValidation adds a custom tag to the shared validator
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().v.RegisterValidation(tag, fn)
}

// Translator picks the translator for an Accept-Language style list, English by default
func (b *Validator) Translator(locales ...string) ut.Translator {
	var tags []string
	for _, l := range locales {
		for _, part := range strings.Split(l, ",") {
			tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
			if tag == "" {
				continue
			}
			base, _, _ := strings.Cut(strings.ToLower(tag), "-")
			tags = append(tags, base)
		}
	}
	t, _ := b.uni.FindTranslator(tags...)
	return t
}

// Struct validates s and returns a validation error naming the first bad field
func (b *Validator) Struct(s any, locales ...string) error {
	err := b.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	fe := verrs[0]
	return perr.WithField(
		perr.New(perr.ErrorCodeValidation, fe.Translate(b.Translator(locales...))),
		fe.Field(),
	)
}

// ParseJSON decodes one JSON value from r into T and validates it
// unknown fields, trailing data and empty bodies are rejected
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero, dst T
	if r.Body == nil || r.Body == http.NoBody {
		return zero, perr.JSONErrf("empty body")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Get().Struct(dst, r.Header.Get("Accept-Language")); err != nil {
		return zero, err
	}
	return dst, nil
}
