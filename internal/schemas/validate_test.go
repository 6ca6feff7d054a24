package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for name, content := range map[string][]byte{
		"resume":   ResumeSchema(),
		"taxonomy": TaxonomySchema(),
	} {
		t.Run(name, func(t *testing.T) {
			var v map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &v))
			assert.Equal(t, "object", v["type"])
		})
	}
}

func TestValidateResume_Valid(t *testing.T) {
	doc := `{
		"contact": {"name": "Ada Lovelace", "email": "ada@example.com"},
		"experience": [{"title": "Engineer", "organization": "Acme", "start_date": "2020-01", "end_date": "Present", "bullets": ["Built it"]}],
		"skills": ["Go"]
	}`
	assert.NoError(t, ValidateResume([]byte(doc)))
}

func TestValidateResume_EmptyObjectIsValid(t *testing.T) {
	assert.NoError(t, ValidateResume([]byte(`{}`)))
}

func TestValidateResume_WrongType(t *testing.T) {
	err := ValidateResume([]byte(`{"skills": "Go, Python"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "skills", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Error(), "resume.schema.json")
}

func TestValidateResume_NestedField(t *testing.T) {
	err := ValidateResume([]byte(`{"experience": [{"title": "Engineer", "bullets": [42]}]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Errors[0].Field, "experience.0.bullets.0")
}

func TestValidateTaxonomy_MissingVersion(t *testing.T) {
	err := ValidateTaxonomy([]byte(`{"levels": [{"id": "mid", "min_years": 3}], "roles": [{"id": "x", "name": "X", "required": []}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestValidateResume_MalformedDocument(t *testing.T) {
	err := ValidateResume([]byte(`{ invalid json }`))
	require.Error(t, err)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, ResumeSchemaName, docErr.Schema)
}

func TestValidateWith(t *testing.T) {
	schema := []byte(`{"type": "object", "required": ["id"]}`)
	assert.NoError(t, ValidateWith("inline", schema, []byte(`{"id": 1}`)))

	var verr *ValidationError
	require.ErrorAs(t, ValidateWith("inline", schema, []byte(`{}`)), &verr)
	assert.Equal(t, "(root)", verr.Errors[0].Field)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, ValidateWith("broken", []byte(`{"type": 12}`), []byte(`{}`)), &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "contact.email", Message: "Invalid type"},
			{Field: "(root)", Message: "skills is required"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. contact.email: Invalid type")
	assert.Contains(t, msg, "2. (root): skills is required")
}
