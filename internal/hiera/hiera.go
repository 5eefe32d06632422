// Package hiera loads Hiera YAML data files far enough to expose each
// document's keys with their source location, so hiera-aware lint rules
// (a forced module/value existing, a key resolving to a known module
// parameter) can report precise diagnostics without re-implementing a YAML
// parser.
//
// The loader itself is an out-of-core external collaborator (§6); this
// package is the thin seam the core lint engine is exercised against.
package hiera

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one top-level `key: value` pair of a Hiera YAML document, with
// its source location carried through from yaml.v3's *yaml.Node.
type Entry struct {
	Key       string
	Value     *yaml.Node
	Line, Col int
}

// Document is one parsed Hiera YAML file.
type Document struct {
	Path    string
	Entries []Entry
}

// Load parses raw Hiera YAML content into a Document. A malformed document
// returns a non-nil error rather than a partial Document: Hiera files are
// small enough that "keep going on the parts that parsed" gives no real
// benefit over asking the author to fix the file.
func Load(path string, content []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("hiera: parsing %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return &Document{Path: path}, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("hiera: %s: expected a top-level mapping", path)
	}
	doc := &Document{Path: path}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]
		doc.Entries = append(doc.Entries, Entry{
			Key: keyNode.Value, Value: valueNode,
			Line: keyNode.Line, Col: keyNode.Column,
		})
	}
	return doc, nil
}

// Lookup returns the entry for key, if present.
func (d *Document) Lookup(key string) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
