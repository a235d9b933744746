package item

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// catalogFile is the on-disk layout of a catalog
type catalogFile struct {
	Items []Item `json:"items" yaml:"items"`
}

// ParseCatalog decodes a catalog document. format is "yaml" or "json";
// JSON input may carry comments and trailing commas.
func ParseCatalog(data []byte, format string) (Catalog, error) {
	var file catalogFile
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse yaml catalog")
		}
	case "json", "jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse json catalog")
		}
	default:
		return nil, errors.InvalidArgumentf("unsupported catalog format %q", format)
	}
	return NewCatalog(file.Items)
}

// ReadCatalog loads a catalog file, picking the format from its extension
func ReadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("catalog %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read catalog %s", path)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	catalog, err := ParseCatalog(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return catalog, nil
}
