package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/shop-catalog-exporter/internal/catalog"
)

func TestSanitizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{name: "plain com domain", domain: "skims.com", want: "skims"},
		{name: "www prefix stripped", domain: "www.example.com", want: "example"},
		{name: "co suffix stripped", domain: "shop.co", want: "shop"},
		{name: "brazilian compound suffix", domain: "loja.com.br", want: "loja"},
		{name: "longest suffix wins", domain: "store.com.br", want: "store"},
		{name: "no known suffix", domain: "shop.example.io", want: "shop_example_io"},
		{name: "subdomain dots become underscores", domain: "us.shop.com", want: "us_shop"},
		{name: "only one www stripped", domain: "www.www.shop.com", want: "www_shop"},
		{name: "bare name unchanged", domain: "localhost", want: "localhost"},
		{name: "empty", domain: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, catalog.SanitizeDomain(tt.domain))
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "skims_catalog.json", catalog.DefaultOutputPath("skims.com"))
	assert.Equal(t, "us_shop_catalog.json", catalog.DefaultOutputPath("www.us.shop.com"))
}
