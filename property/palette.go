package property

// PaletteSize is the number of colors in the default accent palette.
const PaletteSize = 42

// accentPalette is the report's default theme palette. ThemeDataColor
// references index into it. It is never modified.
var accentPalette = [PaletteSize]string{
	"#FFFFFF", "#000000", "#01B8AA", "#374649", "#FD625E", "#F2C80F", "#5F6B6D",
	"#8AD4EB", "#FE9666", "#A66999", "#3599B8", "#DFBFBF", "#4AC5BB", "#5F6B6D",
	"#FB8281", "#F4D25A", "#7F898A", "#A4DDEE", "#FDAB89", "#B687AC", "#28738A",
	"#A78F8F", "#168980", "#293537", "#BB4A4A", "#B59525", "#475052", "#6A9FB0",
	"#BD7150", "#7B4F71", "#1B4D5C", "#706060", "#0F5C55", "#1C2325", "#7D3231",
	"#796419", "#303637", "#476A75", "#7E4B36", "#52354C", "#0D262E", "#544848",
}

// Accent returns the palette color at index i.
func Accent(i int) (string, bool) {
	if i < 0 || i >= PaletteSize {
		return "", false
	}
	return accentPalette[i], true
}

// Palette returns a copy of the accent palette.
func Palette() []string {
	out := make([]string, PaletteSize)
	copy(out, accentPalette[:])
	return out
}
