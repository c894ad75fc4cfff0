package property

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the canonical type held by a Value.
type Kind int

const (
	// KindString is a plain string value. The zero Value is an empty string.
	KindString Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindNumber is an integer value.
	KindNumber
	// KindColor is a solid fill color, encoded as {"solid":{"color":...}}.
	KindColor
	// KindRaw is a plain JSON literal carried through unchanged.
	KindRaw
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Value is a normalized property value.
type Value struct {
	Kind   Kind
	Text   string // KindString and KindColor
	Bool   bool
	Number int64
	Raw    json.RawMessage
}

// String returns a Value holding s.
func String(s string) Value { return Value{Kind: KindString, Text: s} }

// Bool returns a Value holding b.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number returns a Value holding n.
func Number(n int64) Value { return Value{Kind: KindNumber, Number: n} }

// Color returns a solid fill Value for hex. An empty hex is the fallback
// color for encodings that could not be resolved.
func Color(hex string) Value { return Value{Kind: KindColor, Text: hex} }

// Raw returns a Value that marshals to data unchanged.
func Raw(data json.RawMessage) Value {
	return Value{Kind: KindRaw, Raw: append(json.RawMessage(nil), data...)}
}

// String returns the display form of the value. Colors display as their
// hex string, not the wrapped fill object.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatInt(v.Number, 10)
	case KindRaw:
		return string(v.Raw)
	default:
		return v.Text
	}
}

// IsEmpty reports whether the value is an empty string or empty color,
// which is what failed decodes fall back to.
func (v Value) IsEmpty() bool {
	return (v.Kind == KindString || v.Kind == KindColor) && v.Text == ""
}

type solidFill struct {
	Solid struct {
		Color string `json:"color"`
	} `json:"solid"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindNumber:
		return json.Marshal(v.Number)
	case KindColor:
		var fill solidFill
		fill.Solid.Color = v.Text
		return json.Marshal(fill)
	case KindRaw:
		if len(v.Raw) == 0 {
			return []byte("null"), nil
		}
		return json.Marshal(v.Raw)
	default:
		return json.Marshal(v.Text)
	}
}
