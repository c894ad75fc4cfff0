package property

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/pbitheme/colorutil"
)

var (
	// ErrUnsupportedEncoding reports a property encoding that could not be
	// resolved and was replaced by an empty fallback value.
	ErrUnsupportedEncoding = errors.New("unsupported property encoding")

	// ErrUnknownThemeColor reports a ThemeDataColor reference outside the
	// accent palette.
	ErrUnknownThemeColor = errors.New("unknown theme color")
)

// FixScalar converts a literal as it is stored in the layout document into
// its canonical form.
//
// One enclosing pair of single quotes is removed and doubled quotes are
// collapsed. Values ending in L or D (and not starting with '#') and
// all-digit values become integers, truncated toward zero. "true" and
// "false" become booleans. Anything else, including numbers that fail to
// parse, stays a string.
func FixScalar(raw string) Value {
	v := raw
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		v = v[1 : len(v)-1]
	}
	v = strings.ReplaceAll(v, "''", "'")
	if v == "" {
		return String(v)
	}

	if last := v[len(v)-1]; (last == 'L' || last == 'D') && v[0] != '#' {
		if n, ok := truncate(v[:len(v)-1]); ok {
			return Number(n)
		}
		return String(v)
	}

	if isDigits(v) {
		if n, ok := truncate(v); ok {
			return Number(n)
		}
		return String(v)
	}

	switch v {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return String(v)
}

// ResolveColor resolves a color property into a solid fill Value.
//
// raw is the property object as stored in the layout, either
// {"expr":{"Literal":{"Value":...}}} or {"solid":{"color":{"expr":...}}}
// where the inner expression is a Literal or a ThemeDataColor reference.
// Anything that cannot be resolved yields an empty color.
func ResolveColor(raw json.RawMessage) Value {
	v, _ := resolveColor(raw)
	return v
}

// Decode normalizes one raw property value.
//
// Objects carrying an "expr" key resolve to their literal scalar, objects
// carrying a "solid" key resolve to a solid fill color, and other objects
// are not style properties (ok is false). Lists contribute their first
// element unchanged and plain literals pass through unchanged.
//
// err is never fatal: when it is set, v holds the empty fallback value and
// err describes why the encoding was not understood.
func Decode(raw json.RawMessage) (v Value, ok bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Value{}, false, nil
	}

	switch raw[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return String(""), true, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
		}
		exprRaw, hasExpr := fields["expr"]
		solidRaw, hasSolid := fields["solid"]
		switch {
		case hasExpr && !isNull(exprRaw):
			v, err := resolveScalar(exprRaw)
			return v, true, err
		case hasSolid && !isNull(solidRaw):
			v, err := resolveSolid(solidRaw)
			return v, true, err
		case hasExpr || hasSolid:
			return String(""), true, fmt.Errorf("%w: empty expression", ErrUnsupportedEncoding)
		}
		return Value{}, false, nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return String(""), true, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
		}
		if len(items) == 0 {
			return Value{}, false, nil
		}
		return Raw(items[0]), true, nil

	default:
		return Raw(raw), true, nil
	}
}

// colorExpr is the decoded form of an "expr" node. Exactly one of the
// concrete types below is produced for any input.
type colorExpr interface {
	isColorExpr()
}

// literalExpr holds a Literal value. raw is set when the value is not a
// JSON string and is passed through as written.
type literalExpr struct {
	value string
	raw   json.RawMessage
}

// themeRefExpr is a ThemeDataColor reference. colorID is integral but not
// yet range checked.
type themeRefExpr struct {
	colorID float64
	percent float64
}

type unknownExpr struct{ reason string }

func (literalExpr) isColorExpr()  {}
func (themeRefExpr) isColorExpr() {}
func (unknownExpr) isColorExpr()  {}

type exprJSON struct {
	Literal *struct {
		Value json.RawMessage `json:"Value"`
	} `json:"Literal"`
	ThemeDataColor *struct {
		ColorID *float64 `json:"ColorId"`
		Percent float64  `json:"Percent"`
	} `json:"ThemeDataColor"`
}

func decodeExpr(raw json.RawMessage) colorExpr {
	var e exprJSON
	if err := json.Unmarshal(raw, &e); err != nil {
		return unknownExpr{reason: err.Error()}
	}

	switch {
	case e.Literal != nil:
		if len(e.Literal.Value) == 0 || isNull(e.Literal.Value) {
			return unknownExpr{reason: "literal without value"}
		}
		var s string
		if err := json.Unmarshal(e.Literal.Value, &s); err != nil {
			raw := bytes.TrimSpace(e.Literal.Value)
			return literalExpr{value: string(raw), raw: raw}
		}
		return literalExpr{value: s}

	case e.ThemeDataColor != nil:
		id := e.ThemeDataColor.ColorID
		if id == nil || *id != math.Trunc(*id) {
			return unknownExpr{reason: "theme color without integral ColorId"}
		}
		return themeRefExpr{colorID: *id, percent: e.ThemeDataColor.Percent}
	}

	return unknownExpr{reason: "expression is neither Literal nor ThemeDataColor"}
}

// resolveScalar resolves the "expr" form of a property to an unwrapped value.
func resolveScalar(exprRaw json.RawMessage) (Value, error) {
	switch e := decodeExpr(exprRaw).(type) {
	case literalExpr:
		if e.raw != nil {
			return Raw(e.raw), nil
		}
		return FixScalar(e.value), nil
	case themeRefExpr:
		hex, err := themeColor(e)
		return String(hex), err
	case unknownExpr:
		return String(""), fmt.Errorf("%w: %s", ErrUnsupportedEncoding, e.reason)
	}
	return String(""), ErrUnsupportedEncoding
}

// resolveSolid resolves the {"color":{"expr":...}} body of a solid fill.
func resolveSolid(solidRaw json.RawMessage) (Value, error) {
	var solid struct {
		Color *struct {
			Expr json.RawMessage `json:"expr"`
		} `json:"color"`
	}
	if err := json.Unmarshal(solidRaw, &solid); err != nil {
		return Color(""), fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}
	if solid.Color == nil || len(solid.Color.Expr) == 0 || isNull(solid.Color.Expr) {
		return Color(""), fmt.Errorf("%w: solid fill without color expression", ErrUnsupportedEncoding)
	}

	switch e := decodeExpr(solid.Color.Expr).(type) {
	case literalExpr:
		return Color(FixScalar(e.value).String()), nil
	case themeRefExpr:
		hex, err := themeColor(e)
		return Color(hex), err
	case unknownExpr:
		return Color(""), fmt.Errorf("%w: %s", ErrUnsupportedEncoding, e.reason)
	}
	return Color(""), ErrUnsupportedEncoding
}

func resolveColor(raw json.RawMessage) (Value, error) {
	var fields struct {
		Expr  json.RawMessage `json:"expr"`
		Solid json.RawMessage `json:"solid"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Color(""), fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}

	switch {
	case len(fields.Expr) > 0 && !isNull(fields.Expr):
		v, err := resolveScalar(fields.Expr)
		return Color(v.String()), err
	case len(fields.Solid) > 0 && !isNull(fields.Solid):
		return resolveSolid(fields.Solid)
	}
	return Color(""), fmt.Errorf("%w: neither expr nor solid present", ErrUnsupportedEncoding)
}

func themeColor(ref themeRefExpr) (string, error) {
	if ref.colorID < 0 || ref.colorID >= PaletteSize {
		return "", fmt.Errorf("%w: ColorId %g", ErrUnknownThemeColor, ref.colorID)
	}
	hex, _ := Accent(int(ref.colorID))
	shaded, err := colorutil.Shade(colorutil.Normalize(hex), ref.percent)
	if err != nil {
		return "", err
	}
	return shaded, nil
}

// truncate parses s as a float and truncates it toward zero.
func truncate(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
