// Package property decodes the property encodings found in report layout
// documents into canonical values.
//
// Layout documents store formatting properties in several shapes that vary
// between versions of the authoring tool:
//
//	{"expr":{"Literal":{"Value":"12D"}}}
//	{"solid":{"color":{"expr":{"Literal":{"Value":"'#FF0000'"}}}}}
//	{"solid":{"color":{"expr":{"ThemeDataColor":{"ColorId":2,"Percent":0.4}}}}}
//
// [Decode] turns each of these into a [Value]: a boolean, an integer, a
// string, or a solid fill color. ThemeDataColor references are resolved
// against the fixed default accent palette (see [Accent]) and shaded with
// [colorutil.Shade].
//
// Decoding is best effort. Encodings that are not understood produce an
// empty string or empty color together with a non-fatal error, so that a
// single unknown shape never blocks extraction of the rest of a report.
package property
