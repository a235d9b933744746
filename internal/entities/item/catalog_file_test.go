package item_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/item"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

const yamlCatalog = `
items:
  - name: herb
    kind: material
    countable: true
    max_stack: 20
  - name: crypt_key
    kind: quest
    description: Opens the crypt
`

const jsoncCatalog = `{
  // gathered in the forest
  "items": [
    {"name": "herb", "kind": "material", "countable": true, "max_stack": 20},
    {"name": "crypt_key", "kind": "quest", "description": "Opens the crypt"}, /* trailing comma */
  ],
}`

func TestParseCatalog(t *testing.T) {
	want := item.Catalog{
		"herb":      {Name: "herb", Kind: item.KindMaterial, Countable: true, MaxStack: 20},
		"crypt_key": {Name: "crypt_key", Kind: item.KindQuest, Description: "Opens the crypt"},
	}

	testCases := []struct {
		name   string
		data   string
		format string
	}{
		{name: "yaml", data: yamlCatalog, format: "yaml"},
		{name: "jsonc", data: jsoncCatalog, format: "jsonc"},
		{name: "json extension with comments", data: jsoncCatalog, format: "json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			catalog, err := item.ParseCatalog([]byte(tc.data), tc.format)
			require.NoError(t, err)
			assert.Equal(t, want, catalog)
		})
	}
}

func TestParseCatalogErrors(t *testing.T) {
	_, err := item.ParseCatalog([]byte("items: ["), "yaml")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = item.ParseCatalog([]byte(`{"items": [{"name": "dust", "countable": true}]}`), "json")
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "max_stack")

	_, err = item.ParseCatalog([]byte(`{}`), "toml")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestReadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o600))

	catalog, err := item.ReadCatalog(path)
	require.NoError(t, err)

	herb, err := catalog.Lookup("herb")
	require.NoError(t, err)
	assert.Equal(t, 20, herb.MaxCount())

	_, err = item.ReadCatalog(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.IsNotFound(err))
}
