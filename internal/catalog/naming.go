package catalog

import "strings"

// knownTLDSuffixes are trimmed from store domains when deriving output
// names. Longest match wins and only one suffix is stripped.
var knownTLDSuffixes = []string{".com.br", ".com", ".co", ".br"}

// SanitizeDomain derives a filename-safe slug from a store domain: one
// leading "www." is stripped, one known TLD suffix is stripped, and any
// remaining dots become underscores.
func SanitizeDomain(domain string) string {
	s := strings.TrimPrefix(domain, "www.")

	for _, suffix := range knownTLDSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}

	return strings.ReplaceAll(s, ".", "_")
}

// DefaultOutputPath returns the derived catalog file name for a store.
func DefaultOutputPath(domain string) string {
	return SanitizeDomain(domain) + "_catalog.json"
}
