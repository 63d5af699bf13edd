package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteCatalog serializes products as a pretty-printed JSON array to path.
// Unlike page retrieval, a failure here is fatal and propagates: there is
// no partial-file or resume story.
func WriteCatalog(path string, products []Product) error {
	if products == nil {
		products = []Product{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}

	return nil
}
