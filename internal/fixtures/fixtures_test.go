package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"homefinder-listings/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties(t *testing.T) {
	props, err := Properties()
	require.NoError(t, err)
	require.Len(t, props, 12)

	assert.Equal(t, int64(1), props[0].ID)
	for _, p := range props {
		assert.True(t, p.PropertyType.Valid(), "id %d", p.ID)
		assert.LessOrEqual(t, len(p.Images), models.MaxImages)
		assert.NotEmpty(t, p.Status)
		assert.False(t, p.CreatedAt.IsZero())
	}

	villa := props[4]
	assert.Equal(t, int64(5), villa.ID)
	assert.Equal(t, models.TypeVilla, villa.PropertyType)
	assert.Equal(t, 32000000.0, villa.Price)
}

func TestPropertiesReturnsFreshCopies(t *testing.T) {
	first, err := Properties()
	require.NoError(t, err)
	first[0].Title = "changed"

	second, err := Properties()
	require.NoError(t, err)
	assert.NotEqual(t, "changed", second[0].Title)
}

func TestContacts(t *testing.T) {
	contacts, err := Contacts()
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "John Smith", contacts[0].Name)
	assert.Equal(t, models.ContactNew, contacts[1].Status)
	require.NotNil(t, contacts[1].PropertyID)
	assert.Equal(t, int64(2), *contacts[1].PropertyID)
}

func TestDecodePropertiesRejectsSchemaViolations(t *testing.T) {
	body := []byte(`[{"id":1,"title":"Bad zip","address":"Somewhere","city":"Pune","state":"Maharashtra",
		"zip":"41","price":100,"bedrooms":1,"bathrooms":1,"squareFootage":500,"propertyType":"Flat",
		"images":[],"createdAt":"2024-01-01T00:00:00Z"}]`)

	_, err := DecodeProperties(body)
	assert.Error(t, err)
}

func TestLoadPropertiesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.json")
	body := []byte(`[{"id":7,"title":"Riverside Flat","address":"1 River Road","city":"Pune","state":"Maharashtra",
		"zip":"411001","price":2500000,"bedrooms":2,"bathrooms":1,"squareFootage":800,"propertyType":"Flat",
		"images":["a.jpg"],"createdAt":"2024-02-01T00:00:00Z"}]`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	props, err := LoadProperties(path)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, models.StatusAvailable, props[0].Status)
	assert.Equal(t, props[0].CreatedAt, props[0].UpdatedAt)

	_, err = LoadProperties(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
