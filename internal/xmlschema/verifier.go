// Package xmlschema checks generated documents against the fixed JPK_WB
// schema set using libxml2.
package xmlschema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
)

// rootSchemaFile is the entry schema; the others are pulled in through its
// imports and must sit in the same directory.
const rootSchemaFile = "Schemat_JPK_WB(1)_v1-0.xsd"

var dependencySchemaFiles = []string{
	"ElementarneTypyDanych_v4-0E.xsd",
	"StrukturyDanych_v4-0E.xsd",
	"KodyCechKrajow_v3-0E.xsd",
	"KodyUrzedowSkarbowych_v4-0E.xsd",
	"KodyKrajow_v4-1E.xsd",
}

// Verifier validates documents against the compiled schema set. Safe for
// concurrent use; each Verify call is independent.
type Verifier struct {
	schema *xsd.Schema
}

// NewVerifier loads the schema set from schemaDir. Every file of the set
// must be present; a missing one is a deployment fault, not a per-document
// condition.
func NewVerifier(schemaDir string) (*Verifier, error) {
	for _, name := range append([]string{rootSchemaFile}, dependencySchemaFiles...) {
		path := filepath.Join(schemaDir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("schema file %s: %w", name, err)
		}
	}

	schema, err := xsd.ParseFromFile(filepath.Join(schemaDir, rootSchemaFile))
	if err != nil {
		return nil, fmt.Errorf("parsing schema set: %w", err)
	}
	return &Verifier{schema: schema}, nil
}

// Close releases the compiled schema.
func (v *Verifier) Close() {
	v.schema.Free()
}

// Verify checks one document against the schema set and returns every
// violation found. A nil slice means the document conforms. The error
// return is reserved for verifier failures such as an unparseable payload.
func (v *Verifier) Verify(payload []byte) ([]domain.SchemaViolation, error) {
	doc, err := libxml2.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	defer doc.Free()

	if err := v.schema.Validate(doc); err != nil {
		var schemaErr xsd.SchemaValidationError
		if errors.As(err, &schemaErr) {
			violations := make([]domain.SchemaViolation, 0, len(schemaErr.Errors()))
			for _, ve := range schemaErr.Errors() {
				violations = append(violations, domain.SchemaViolation{
					Severity: "error",
					Message:  ve.Error(),
				})
			}
			return violations, nil
		}
		return nil, fmt.Errorf("validating document: %w", err)
	}
	return nil, nil
}
