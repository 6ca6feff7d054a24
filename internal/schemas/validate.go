// Package schemas validates the JSON documents the scorer reads, résumé inputs and
// role taxonomy files, against JSON Schemas embedded at compile time.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const (
	ResumeSchemaName   = "resume.schema.json"
	TaxonomySchemaName = "taxonomy.schema.json"
)

//go:embed resume.schema.json
var resumeSchema []byte

//go:embed taxonomy.schema.json
var taxonomySchema []byte

// ValidationError lists every schema violation found in a document
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is one violation; Field is a dotted path such as "experience.0.bullets"
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Schema != "" {
		fmt.Fprintf(&sb, "validation against %s failed:\n", ve.Schema)
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError means a schema itself could not be compiled
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError means the document is not well-formed JSON
type DocumentError struct {
	Schema string
	Cause  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document for %s is not valid JSON: %v", e.Schema, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// compiled holds a schema that is compiled on first use
type compiled struct {
	name   string
	source []byte
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

func (c *compiled) get() (*gojsonschema.Schema, error) {
	c.once.Do(func() {
		c.schema, c.err = compile(c.name, c.source)
	})
	return c.schema, c.err
}

var (
	resume   = &compiled{name: ResumeSchemaName, source: resumeSchema}
	taxonomy = &compiled{name: TaxonomySchemaName, source: taxonomySchema}
)

func compile(name string, source []byte) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(source))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	return schema, nil
}

// ResumeSchema returns the embedded résumé schema document
func ResumeSchema() []byte {
	return resumeSchema
}

// TaxonomySchema returns the embedded role taxonomy schema document
func TaxonomySchema() []byte {
	return taxonomySchema
}

// ValidateResume validates a résumé JSON document
func ValidateResume(doc []byte) error {
	schema, err := resume.get()
	if err != nil {
		return err
	}
	return validate(ResumeSchemaName, schema, doc)
}

// ValidateTaxonomy validates a role taxonomy JSON document
func ValidateTaxonomy(doc []byte) error {
	schema, err := taxonomy.get()
	if err != nil {
		return err
	}
	return validate(TaxonomySchemaName, schema, doc)
}

// ValidateWith compiles schemaDoc and validates doc against it
func ValidateWith(name string, schemaDoc, doc []byte) error {
	schema, err := compile(name, schemaDoc)
	if err != nil {
		return err
	}
	return validate(name, schema, doc)
}

func validate(name string, schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &DocumentError{Schema: name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
