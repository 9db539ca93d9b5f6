package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type institutionForm struct {
	Name  string `form:"name" binding:"required" validate:"required"`
	TaxID string `form:"tax_id" validate:"required,min=5"`
	Email string `validate:"omitempty,email"`
}

func newTranslator(t *testing.T) (*validator.Validate, *Translator) {
	t.Helper()
	v := validator.New()
	tr, err := Setup(v)
	require.NoError(t, err)
	return v, tr
}

func TestFromBindErrorUsesFormTagsAndLanguage(t *testing.T) {
	v, tr := newTranslator(t)
	form := institutionForm{TaxID: "12"}
	err := v.Struct(form)
	require.Error(t, err)

	en := tr.FromBindError(err, &form, "en")
	assert.Contains(t, en, "name")
	assert.Contains(t, en, "tax_id")
	assert.Contains(t, en["name"], "required")

	es := tr.FromBindError(err, &form, "es")
	assert.Contains(t, es["name"], "name")
	assert.NotEqual(t, en["name"], es["name"])
}

func TestFromBindErrorUnknownLanguageFallsBackToEnglish(t *testing.T) {
	v, tr := newTranslator(t)
	form := institutionForm{}
	err := v.Struct(form)
	require.Error(t, err)

	fr := tr.FromBindError(err, &form, "fr")
	en := tr.FromBindError(err, &form, "en")
	assert.Equal(t, en, fr)
}

func TestFromBindErrorFieldWithoutFormTag(t *testing.T) {
	v, tr := newTranslator(t)
	form := institutionForm{Name: "Clinica", TaxID: "900123", Email: "nope"}
	err := v.Struct(form)
	require.Error(t, err)

	out := tr.FromBindError(err, &form, "en")
	assert.Contains(t, out, "email")
}

func TestFromBindErrorNonValidationError(t *testing.T) {
	_, tr := newTranslator(t)
	out := tr.FromBindError(errors.New("strconv.ParseInt: invalid syntax"), &institutionForm{}, "es")
	assert.Equal(t, FieldErrors{"_": "Los datos del formulario no son válidos."}, out)
}
