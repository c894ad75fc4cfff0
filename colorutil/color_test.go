package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#abc", true},
		{"#ABC", true},
		{"#a1b2c3", true},
		{"#FFFFFF", true},
		{"#abcd", false},
		{"#abcde", false},
		{"abc123", false},
		{"#abc123 ", false},
		{"#abc1234", false},
		{"#ggg", false},
		{"", false},
		{"#", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidHexColor(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "#01B8AA", Normalize("01B8AA"))
	assert.Equal(t, "#01B8AA", Normalize("#01B8AA"))
	assert.Equal(t, "", Normalize(""))
}

func TestShade(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		percent float64
		want    string
	}{
		{"black to white", "#000000", 1.0, "#ffffff"},
		{"white to black", "#ffffff", -1.0, "#000000"},
		{"half tint of black", "#000000", 0.5, "#808080"},
		{"half shade of white rounds to even", "#ffffff", -0.5, "#7f7f7f"},
		{"quarter tint", "#01B8AA", 0.25, "#41cabf"},
		{"quarter shade", "#01B8AA", -0.25, "#018a80"},
		{"clamped above one", "#123456", 3, "#ffffff"},
		{"clamped below minus one", "#123456", -3, "#000000"},
		{"short form", "#fff", -1, "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Shade(tt.hex, tt.percent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShade_ZeroIsIdentity(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#01b8aa", "#fd625e", "#7f898a", "#0d262e"} {
		got, err := Shade(hex, 0)
		require.NoError(t, err)
		assert.Equal(t, hex, got)
	}
}

func TestShade_LowercasesOutput(t *testing.T) {
	got, err := Shade("#FD625E", 0)
	require.NoError(t, err)
	assert.Equal(t, "#fd625e", got)
}

func TestShade_Invalid(t *testing.T) {
	for _, hex := range []string{"", "FFFFFF", "#12", "#zzzzzz", "#1234567"} {
		_, err := Shade(hex, 0.5)
		assert.ErrorIs(t, err, ErrInvalidHex, "Shade(%q)", hex)
	}
}

func TestMustShade_Panics(t *testing.T) {
	assert.Panics(t, func() { MustShade("nope", 0) })
	assert.Equal(t, "#ffffff", MustShade("#000000", 1))
}
