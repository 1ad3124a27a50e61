package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

type sample struct {
	DraftID string   `json:"draft_id" validate:"required,uuid"`
	Kind    string   `json:"kind" validate:"oneof=main same sub up"`
	Letter  string   `json:"letter" validate:"omitempty,len=1,lowercase,alpha"`
	Text    string   `json:"text" validate:"max=5"`
	Lines   []string `json:"lines" validate:"max=2"`
	Hidden  string   `json:"-" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	valid := sample{
		DraftID: "7b2d9c1e-4f0a-4a4e-9a55-1c2d3e4f5a6b",
		Kind:    "sub",
		Letter:  "c",
		Text:    "ok",
		Hidden:  "x",
	}
	require.NoError(t, ValidateStruct(valid))

	invalid := sample{
		DraftID: "nope",
		Kind:    "sideways",
		Letter:  "C",
		Text:    "too long",
		Lines:   []string{"1", "2", "3"},
	}
	err := ValidateStruct(invalid)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	var fieldErrs *pkgerrors.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	byField := fieldErrs.ToMap()

	assert.Equal(t, []string{"draft_id must be a valid id"}, byField["draft_id"])
	assert.Equal(t, []string{"kind must be one of: main same sub up"}, byField["kind"])
	assert.Equal(t, []string{"letter must be a lowercase letter"}, byField["letter"])
	assert.Equal(t, []string{"text must be at most 5 characters"}, byField["text"])
	assert.Equal(t, []string{"lines must be at most 2"}, byField["lines"])
	assert.Equal(t, []string{"Hidden is required"}, byField["Hidden"])
}

func TestValidateStruct_NestedPath(t *testing.T) {
	type inner struct {
		Name string `json:"name" validate:"required"`
	}
	type outer struct {
		Inner inner `json:"inner"`
	}

	err := ValidateStruct(outer{})

	var fieldErrs *pkgerrors.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"inner.name is required"}, fieldErrs.ToMap()["inner.name"])
}
