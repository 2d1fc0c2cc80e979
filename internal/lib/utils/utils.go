// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v to w as indented JSON followed by a newline.
//
// HTML escaping is off so route labels like "LAX → JFK" and airline names
// with "&" print as they are stored.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
