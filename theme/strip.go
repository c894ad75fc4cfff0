package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Bookkeeping keys written by older tools next to real properties. They are
// never part of a valid theme.
var bookkeepingKeys = []string{"__selected", "__wildcard"}

// Strip removes bookkeeping keys from a decoded JSON value at any depth and
// returns the result. Maps are modified in place.
func Strip(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range bookkeepingKeys {
			delete(t, k)
		}
		for k, child := range t {
			t[k] = Strip(child)
		}
	case []any:
		for i, child := range t {
			t[i] = Strip(child)
		}
	}
	return v
}

// StripJSON removes bookkeeping keys from a theme file and re-encodes it
// with four-space indentation. Numbers are kept as written.
func StripJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding theme: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(Strip(v)); err != nil {
		return nil, fmt.Errorf("encoding theme: %w", err)
	}
	return buf.Bytes(), nil
}

// HasBookkeeping reports whether data is JSON with a bookkeeping key in any
// object. Values that merely look like a key do not count.
func HasBookkeeping(data []byte) bool {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return false
	}
	return hasBookkeeping(v)
}

func hasBookkeeping(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range bookkeepingKeys {
			if _, ok := t[k]; ok {
				return true
			}
		}
		for _, child := range t {
			if hasBookkeeping(child) {
				return true
			}
		}
	case []any:
		for _, child := range t {
			if hasBookkeeping(child) {
				return true
			}
		}
	}
	return false
}
