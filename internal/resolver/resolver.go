// Package resolver matches free-text input against a symbol catalog.
package resolver

import (
    "strings"

    "trackit/internal/provider"
)

// MaxCandidates bounds the number of suggestions returned by Resolve.
const MaxCandidates = 10

// Resolve returns up to MaxCandidates catalog entries whose symbol or full
// name contains the trimmed query, ignoring case, in catalog order. An empty
// query or catalog yields no candidates.
func Resolve(query string, catalog []provider.CatalogEntry) []provider.CatalogEntry {
    q := strings.ToLower(strings.TrimSpace(query))
    if q == "" || len(catalog) == 0 {
        return nil
    }
    out := make([]provider.CatalogEntry, 0, MaxCandidates)
    for _, e := range catalog {
        if strings.Contains(strings.ToLower(e.Symbol), q) || strings.Contains(strings.ToLower(e.FullName), q) {
            out = append(out, e)
            if len(out) == MaxCandidates {
                break
            }
        }
    }
    return out
}
