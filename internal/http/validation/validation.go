package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// FieldErrors maps a form field name to its message. "_" holds errors that
// belong to no single field.
type FieldErrors map[string]string

var invalidForm = map[string]string{
	"es": "Los datos del formulario no son válidos.",
	"en": "The form data is invalid.",
}

// Translator renders validator errors in the portal's languages.
type Translator struct {
	uni      *ut.UniversalTranslator
	fallback string
}

// Setup registers the English and Spanish messages on v and makes validator
// report form field names instead of Go field names.
func Setup(v *validator.Validate) (*Translator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, es.New())

	enTrans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return nil, fmt.Errorf("validation: register en: %w", err)
	}
	esTrans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(v, esTrans); err != nil {
		return nil, fmt.Errorf("validation: register es: %w", err)
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := tagName(f.Tag.Get("form")); name != "" {
			return name
		}
		return tagName(f.Tag.Get("json"))
	})
	return &Translator{uni: uni, fallback: "en"}, nil
}

// FromBindError converts a bind error into field messages in lang. dst is
// the struct pointer that was bound, used to read form tags.
func (t *Translator) FromBindError(err error, dst any, lang string) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		trans, found := t.uni.GetTranslator(lang)
		if !found {
			trans, _ = t.uni.GetTranslator(t.fallback)
		}
		for _, fe := range ve {
			out[fieldKey(dst, fe.StructField())] = fe.Translate(trans)
		}
		return out
	}

	msg, ok := invalidForm[lang]
	if !ok {
		msg = invalidForm[t.fallback]
	}
	out["_"] = msg
	return out
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	if tag := tagName(f.Tag.Get("form")); tag != "" {
		return tag
	}
	return strings.ToLower(structField)
}

// tagName strips options such as ",omitempty" and ignores "-".
func tagName(tag string) string {
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "-" {
		return ""
	}
	return tag
}
