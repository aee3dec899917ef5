/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package registry

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a set of definitions.
//
//	booleans:
//	  "true": ["true", "yes"]
//	  "false": ["false", "no"]
//	commands:
//	  - name: section
//	    shape: "*oTrT"
//	  - name: note
//	    params:
//	      - {format: optional, type: keyvalue}
//	      - {format: required, type: tokens}
//	environments:
//	  - name: listing
//	    star: true
//	    body: verbatim
//	macros:
//	  - name: defaults
//	    expansion: "width = 3in, height = 2in"
type File struct {
	Booleans     *Vocabulary  `yaml:"booleans" json:"booleans"`
	Commands     []Entry      `yaml:"commands" json:"commands"`
	Environments []Entry      `yaml:"environments" json:"environments"`
	Macros       []MacroEntry `yaml:"macros" json:"macros"`
}

// Entry declares one command or environment. Shape and Params are
// alternatives; when both are given, Shape comes first.
type Entry struct {
	Name   string          `yaml:"name" json:"name"`
	Star   bool            `yaml:"star" json:"star"`
	Shape  string          `yaml:"shape" json:"shape"`
	Params []ParameterSpec `yaml:"params" json:"params"`
	Body   BodyType        `yaml:"body" json:"body"`
}

// MacroEntry declares a zero-argument user macro.
type MacroEntry struct {
	Name      string `yaml:"name" json:"name"`
	Expansion string `yaml:"expansion" json:"expansion"`
}

// ParseFile decodes a definitions file. JSON (with comments) and YAML are
// both accepted.
func ParseFile(data []byte) (*File, error) {
	f := &File{}
	if isLikelyJSON(data) {
		if err := json.Unmarshal(jsonc.ToJSON(data), f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON definitions: %w", err)
		}
		return f, nil
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML definitions: %w", err)
	}
	return f, nil
}

// LoadDefinitions parses data and registers everything it declares.
func (r *Registry) LoadDefinitions(data []byte) error {
	f, err := ParseFile(data)
	if err != nil {
		return err
	}
	return r.Apply(f)
}

// Apply registers the contents of a definitions file.
func (r *Registry) Apply(f *File) error {
	if f.Booleans != nil {
		r.SetBooleans(*f.Booleans)
	}
	for _, e := range f.Commands {
		params, err := e.params()
		if err != nil {
			return err
		}
		if err := r.RegisterCommand(e.Name, e.Star, params...); err != nil {
			return err
		}
	}
	for _, e := range f.Environments {
		params, err := e.params()
		if err != nil {
			return err
		}
		if err := r.RegisterEnvironment(e.Name, e.Star, e.Body, params...); err != nil {
			return err
		}
	}
	for _, m := range f.Macros {
		if err := r.DefineMacro(m.Name, m.Expansion); err != nil {
			return err
		}
	}
	return nil
}

func (e Entry) params() ([]ParameterSpec, error) {
	params, err := ParseShape(e.Shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return append(params, e.Params...), nil
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF:
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
