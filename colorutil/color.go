// Package colorutil provides hex color helpers used when resolving theme
// colors: validation, normalization, and tint/shade math.
package colorutil

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a #rgb or #rrggbb color.
var ErrInvalidHex = errors.New("invalid hex color")

var hexColorPattern = regexp.MustCompile(`^#[a-fA-F0-9]{3}(?:[a-fA-F0-9]{3})?$`)

// IsValidHexColor reports whether s is a '#'-prefixed 3 or 6 digit hex color.
func IsValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// Normalize adds a leading '#' to hex when it is missing.
func Normalize(hex string) string {
	if hex == "" || hex[0] == '#' {
		return hex
	}
	return "#" + hex
}

// Shade lightens or darkens hex by percent.
//
// A negative percent moves each channel toward black, a positive percent
// toward white; zero returns the same color. percent is clamped to [-1, 1].
// Each channel becomes round((target-c)*|percent|) + c, rounding half to
// even. The result is always lowercase #rrggbb.
func Shade(hex string, percent float64) (string, error) {
	if !IsValidHexColor(hex) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidHex, hex, err)
	}

	percent = math.Max(-1, math.Min(1, percent))
	target := 255.0
	if percent < 0 {
		target = 0
	}
	p := math.Abs(percent)

	r, g, b := c.RGB255()
	shaded := colorful.Color{
		R: float64(shadeChannel(r, target, p)) / 255.0,
		G: float64(shadeChannel(g, target, p)) / 255.0,
		B: float64(shadeChannel(b, target, p)) / 255.0,
	}
	return strings.ToLower(shaded.Hex()), nil
}

// MustShade is like Shade but panics on an invalid color.
func MustShade(hex string, percent float64) string {
	out, err := Shade(hex, percent)
	if err != nil {
		panic(err)
	}
	return out
}

func shadeChannel(c uint8, target, p float64) uint8 {
	v := math.RoundToEven((target-float64(c))*p) + float64(c)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
