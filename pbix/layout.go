package pbix

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Layout is the root of a report layout document.
type Layout struct {
	Sections []Section `json:"sections"`
}

// Section is one report page.
type Section struct {
	Name             string            `json:"name"`
	DisplayName      string            `json:"displayName"`
	Config           string            `json:"config"`
	VisualContainers []VisualContainer `json:"visualContainers"`
}

// VisualContainer is one visual placed on a page. Config holds the visual's
// JSON configuration as a string.
type VisualContainer struct {
	Config string `json:"config"`
}

// ObjectMap maps an object (formatting card) name to its property variants.
type ObjectMap map[string][]PropertyVariant

// PropertyVariant is one set of property values for an object. Objects may
// carry several variants scoped by selector; only the first is canonical.
type PropertyVariant struct {
	Properties map[string]json.RawMessage `json:"properties"`
	Selector   json.RawMessage            `json:"selector,omitempty"`
}

// FirstVariant returns the canonical variant of an object, which is always
// the first one. Later variants are ignored.
func FirstVariant(variants []PropertyVariant) (PropertyVariant, bool) {
	if len(variants) == 0 {
		return PropertyVariant{}, false
	}
	return variants[0], true
}

// VisualConfig is the parsed config of a visual container.
type VisualConfig struct {
	Name         string       `json:"name"`
	SingleVisual SingleVisual `json:"singleVisual"`
}

// SingleVisual holds the type and formatting objects of a visual. Objects
// holds data-bound formatting, VcObjects holds visual container formatting
// such as title, background and border.
type SingleVisual struct {
	VisualType string    `json:"visualType"`
	Objects    ObjectMap `json:"objects"`
	VcObjects  ObjectMap `json:"vcObjects"`
}

// PageConfig is the parsed config of a section.
type PageConfig struct {
	Objects ObjectMap `json:"objects"`
}

// ParseVisualConfig parses the config string of a visual container.
func ParseVisualConfig(config string) (*VisualConfig, error) {
	var vc VisualConfig
	if err := unmarshalConfig(config, &vc); err != nil {
		return nil, fmt.Errorf("parsing visual config: %w", err)
	}
	return &vc, nil
}

// ParsePageConfig parses the config string of a section. An empty config is
// a page without formatting.
func ParsePageConfig(config string) (*PageConfig, error) {
	var pc PageConfig
	if strings.TrimSpace(config) == "" {
		return &pc, nil
	}
	if err := unmarshalConfig(config, &pc); err != nil {
		return nil, fmt.Errorf("parsing page config: %w", err)
	}
	return &pc, nil
}

func unmarshalConfig(config string, v any) error {
	if strings.TrimSpace(config) == "" {
		return fmt.Errorf("empty config")
	}
	return json.Unmarshal([]byte(config), v)
}

// EffectiveObjects returns the formatting objects of the visual. When both
// maps are present they are merged and VcObjects wins for any object name
// found in both.
func (sv SingleVisual) EffectiveObjects() ObjectMap {
	return MergeObjects(sv.Objects, sv.VcObjects)
}

// MergeObjects combines a primary and a secondary object map. A nil map is
// absent. The secondary map overwrites the primary on conflicting names.
// The inputs are not modified.
func MergeObjects(primary, secondary ObjectMap) ObjectMap {
	switch {
	case primary == nil && secondary == nil:
		return ObjectMap{}
	case primary == nil:
		return secondary
	case secondary == nil:
		return primary
	}

	merged := make(ObjectMap, len(primary)+len(secondary))
	for name, variants := range primary {
		merged[name] = variants
	}
	for name, variants := range secondary {
		merged[name] = variants
	}
	return merged
}
