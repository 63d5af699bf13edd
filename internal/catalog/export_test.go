package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/shop-catalog-exporter/internal/catalog"
)

func TestWriteCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "shop_catalog.json")
	products := []catalog.Product{
		json.RawMessage(`{"id":"a","title":"First"}`),
		json.RawMessage(`{"id":"b","title":"Second"}`),
	}

	require.NoError(t, catalog.WriteCatalog(path, products))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0]["id"])
	assert.Equal(t, "b", got[1]["id"])

	// Pretty-printed with two-space indent.
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))
}

func TestWriteCatalog_EmptyIsArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, catalog.WriteCatalog(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestWriteCatalog_FailurePropagates(t *testing.T) {
	t.Parallel()

	err := catalog.WriteCatalog(
		filepath.Join(t.TempDir(), "missing", "out.json"),
		[]catalog.Product{json.RawMessage(`{}`)},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing catalog file")
}

func TestDecodePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		wantProducts int
		wantCursor   string
		wantNext     bool
	}{
		{
			name:         "full page",
			text:         `{"products":[{"id":"1"},{"id":"2"}],"pagination":{"endCursor":"abc","hasNextPage":true}}`,
			wantProducts: 2,
			wantCursor:   "abc",
			wantNext:     true,
		},
		{
			name: "null cursor decodes to empty",
			text: `{"products":[],"pagination":{"endCursor":null,"hasNextPage":false}}`,
		},
		{
			name: "missing pagination defaults to done",
			text: `{"products":[]}`,
		},
		{
			name: "malformed payload decodes to zero page",
			text: `{"products": [truncated`,
		},
		{
			name: "empty string decodes to zero page",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := catalog.DecodePage(tt.text)
			assert.Len(t, page.Products, tt.wantProducts)
			assert.Equal(t, tt.wantCursor, page.Pagination.EndCursor)
			assert.Equal(t, tt.wantNext, page.Pagination.HasNextPage)
		})
	}
}
