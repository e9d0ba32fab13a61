// Package fixtures holds the seed listings and contact leads used by the
// in-memory store, the offline CLI fallback and the tests.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"homefinder-listings/internal/models"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	propertySchema = "property.schema.json"
	contactSchema  = "contact.schema.json"
)

var (
	compileOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	compileErr  error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schemas = make(map[string]*jsonschema.Schema)
	for _, name := range []string{propertySchema, contactSchema} {
		file, err := dataFS.Open("data/" + name)
		if err != nil {
			compileErr = fmt.Errorf("open schema %s: %w", name, err)
			return
		}
		err = compiler.AddResource(name, file)
		file.Close()
		if err != nil {
			compileErr = fmt.Errorf("add schema resource %s: %w", name, err)
			return
		}
	}
	for _, name := range []string{propertySchema, contactSchema} {
		schema, err := compiler.Compile(name)
		if err != nil {
			compileErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		schemas[name] = schema
	}
}

func validate(schemaName string, body []byte) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("fixture is not valid JSON: %w", err)
	}
	if err := schemas[schemaName].Validate(v); err != nil {
		return fmt.Errorf("fixture schema validation failed: %w", err)
	}
	return nil
}

// Properties returns a fresh copy of the 12 embedded listings.
func Properties() ([]models.Property, error) {
	body, err := dataFS.ReadFile("data/properties.json")
	if err != nil {
		return nil, err
	}
	return DecodeProperties(body)
}

// Contacts returns a fresh copy of the embedded contact leads.
func Contacts() ([]models.Contact, error) {
	body, err := dataFS.ReadFile("data/contacts.json")
	if err != nil {
		return nil, err
	}
	if err := validate(contactSchema, body); err != nil {
		return nil, err
	}
	var contacts []models.Contact
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	return contacts, nil
}

// DecodeProperties validates body against the property schema and decodes it.
func DecodeProperties(body []byte) ([]models.Property, error) {
	if err := validate(propertySchema, body); err != nil {
		return nil, err
	}
	var props []models.Property
	if err := json.Unmarshal(body, &props); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	for i := range props {
		if props[i].Status == "" {
			props[i].Status = models.StatusAvailable
		}
		if props[i].UpdatedAt.IsZero() {
			props[i].UpdatedAt = props[i].CreatedAt
		}
	}
	return props, nil
}

// LoadProperties reads listings from path, or the embedded set when path is empty.
func LoadProperties(path string) ([]models.Property, error) {
	if path == "" {
		return Properties()
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return DecodeProperties(body)
}
