package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping node into an OrderedStrings,
// preserving the key order as written in the document — gopkg.in/yaml.v3's
// Node API exposes mapping keys/values as an alternating Content slice,
// which is what lets this type keep "const"/"dynamic" declaration order
// instead of Go's unordered map[string]string.
func (o *OrderedStrings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		// Absent key: leave o as a valid, empty OrderedStrings.
		*o = *NewOrderedStrings(nil, nil)
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping of string to string, got %v", value.Tag)
	}
	*o = *NewOrderedStrings(nil, nil)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key, val string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("decoding key: %w", err)
		}
		if err := value.Content[i+1].Decode(&val); err != nil {
			return fmt.Errorf("decoding value for key %q: %w", key, err)
		}
		o.Set(key, val)
	}
	return nil
}
