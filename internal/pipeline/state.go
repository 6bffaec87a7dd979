// Package pipeline ties an asset-class adapter to the resolver and the
// projector and keeps the per-view query state.
package pipeline

import (
    "trackit/internal/provider"
)

// Failure is the user-facing form of a fetch error.
type Failure struct {
    Kind    provider.ErrorKind `json:"kind"`
    Message string             `json:"message"`
    // Detail is the underlying error text, for logs and verbose output.
    Detail string `json:"detail,omitempty"`
}

// QueryState is everything a presentation needs to draw one view.
// History and Snapshot always belong to Symbol.
type QueryState struct {
    Query      string                  `json:"query"`
    Candidates []provider.CatalogEntry `json:"candidates"`
    Symbol     string                  `json:"symbol"`
    History    []provider.PricePoint   `json:"history"`
    Snapshot   *provider.Snapshot      `json:"snapshot,omitempty"`
    Loading    bool                    `json:"loading"`
    Err        *Failure                `json:"error,omitempty"`
    // Generation identifies the selection that produced History and Snapshot.
    Generation uint64 `json:"generation"`
}
