// Package catalog implements the cursor-driven retrieval loop that pulls a
// store's full product catalog page by page over MCP, plus the export
// writer and the output-path helpers around it.
package catalog

import "encoding/json"

// Product is one opaque product object exactly as the storefront returned
// it. Identity, uniqueness, and schema are owned by the remote service;
// the exporter only concatenates and re-serializes.
type Product = json.RawMessage

// Pagination carries the continuation state reported by the last page.
type Pagination struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// Page is one decoded slice of the catalog, embedded as a JSON-encoded
// string inside the first content block of a search_shop_catalog result.
type Page struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// DecodePage parses the embedded text payload of a tool result. Malformed
// or missing payloads decode to the zero Page (no products, no cursor, no
// next page), which naturally ends pagination instead of crashing it.
func DecodePage(text string) Page {
	var p Page
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Page{}
	}
	return p
}
