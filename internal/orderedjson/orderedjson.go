// Package orderedjson walks JSON objects key by key so callers can keep the
// order the provider wrote them in. Go maps lose that order, and both the
// Alpha Vantage daily series and the CryptoCompare coin list rely on it.
package orderedjson

import (
	"encoding/json"
	"fmt"
)

// Object reads one JSON object from dec and calls fn for every member in
// document order. fn must consume exactly one value from dec (via Decode or
// a nested Object call). A literal null is accepted and yields no members.
func Object(dec *json.Decoder, fn func(key string, dec *json.Decoder) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return err
		}
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Skip consumes and discards the next value.
func Skip(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
