package packagejson

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// ToYAML renders d as YAML with the same key order Encode uses.
func ToYAML(d *Descriptor) ([]byte, error) {
	data, err := Encode(d, WriteOptions{Format: Compact})
	if err != nil {
		return nil, err
	}

	// JSON is YAML; parsing into a node keeps key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	clearStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// clearStyle drops the flow and quoting styles inherited from JSON so the
// encoder picks block style and quotes only where YAML needs it.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
