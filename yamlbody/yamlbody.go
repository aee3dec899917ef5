/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package yamlbody decodes the text of YAML environment bodies.
//
// Decode matches parser.YAMLDecoder and is passed to the parser with
// parser.WithYAMLDecoder:
//
//	toks, err := parser.Parse(src, reg, parser.WithYAMLDecoder(yamlbody.Decode))
package yamlbody

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses text as a single YAML document. Mappings come back as
// map[string]any whatever the type of their keys. An empty body decodes
// to nil.
func Decode(text string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("failed to parse YAML body: %w", err)
	}
	return normalize(v), nil
}

// normalize recursively converts map[any]any to map[string]any.
// YAML with numeric keys (like "10:") creates map[any]any.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = normalize(val)
		}
		return x
	case map[any]any:
		result := make(map[string]any, len(x))
		for k, val := range x {
			result[fmt.Sprintf("%v", k)] = normalize(val)
		}
		return result
	case []any:
		for i, val := range x {
			x[i] = normalize(val)
		}
		return x
	default:
		return v
	}
}
