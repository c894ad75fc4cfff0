// Package model provides the in-memory representation of the formatting
// extracted from a report.
//
// This package defines the data structures that the builder produces from a
// layout document and that the theme compiler reads. A [Report] holds its
// pages in layout order:
//
//	report := model.NewReport()
//	page := model.NewPage("ReportSection", "Overview")
//	report.AddPage(page)
//
// Each [Page] holds its [Visual] values in container order, followed by one
// synthetic visual of type [PageVisualType] carrying the page's own
// formatting. A visual is addressed by its page ID and its Index, which is
// assigned when the visual is added and never changes.
//
// # Objects and Properties
//
// A visual's formatting is grouped into named [Object] values (formatting
// cards such as "title" or "labels"), each mapping property names to
// normalized [property.Value] values.
//
// # Warnings
//
// Building a report is best effort. Visuals whose configuration cannot be
// parsed and property encodings that are not understood are recorded as
// [Warning] values instead of failing the build.
package model
