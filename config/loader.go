/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	finlfs "bennypowers.dev/finl/fs"
)

// ConfigFileName is the base name of the config file, without extension.
const ConfigFileName = "finl"

// ConfigDir is the directory, relative to the project root, holding the
// config file.
const ConfigDir = ".config"

// decoders maps each config file extension to its decoder, in lookup order.
var decoders = []struct {
	ext    string
	decode func(data []byte, v any) error
}{
	{".yaml", yaml.Unmarshal},
	{".yml", yaml.Unmarshal},
	{".json", func(data []byte, v any) error {
		return json.Unmarshal(jsonc.ToJSON(data), v)
	}},
}

// Load reads the first of .config/finl.yaml, .config/finl.yml and
// .config/finl.json found under rootDir. It returns nil and no error when
// there is none.
func Load(filesystem finlfs.FileSystem, rootDir string) (*Config, error) {
	for _, d := range decoders {
		path := filepath.Join(rootDir, ConfigDir, ConfigFileName+d.ext)
		if !filesystem.Exists(path) {
			continue
		}

		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg := &Config{}
		if err := d.decode(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}
	return nil, nil
}

// LoadOrDefault is Load, falling back to Default when the file is missing
// or unreadable.
func LoadOrDefault(filesystem finlfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// ExpandDefinitions resolves Definitions against rootDir. Globs, `**`
// included, are matched against the filesystem in walk order; plain paths
// are returned whether or not they exist.
func (c *Config) ExpandDefinitions(filesystem finlfs.FileSystem, rootDir string) ([]string, error) {
	var result []string
	for _, pattern := range c.Definitions {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(rootDir, pattern)
		}
		if !isGlob(pattern) {
			result = append(result, pattern)
			continue
		}
		matches, err := glob(filesystem, pattern)
		if err != nil {
			return nil, err
		}
		result = append(result, matches...)
	}
	return result, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// glob walks the directory before the first glob segment and keeps the
// files whose remaining path matches.
func glob(filesystem finlfs.FileSystem, pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	var matches []string
	err := fs.WalkDir(filesystem, base, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil && d != nil && d.IsDir():
			return fs.SkipDir
		case err != nil, d.IsDir():
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(rest, filepath.ToSlash(rel)); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
