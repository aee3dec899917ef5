/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package registry

import "fmt"

var builtinCommands = map[string]string{
	// structure
	"chapter":       "*oTrT",
	"section":       "*oTrT",
	"subsection":    "*oTrT",
	"subsubsection": "*oTrT",
	"paragraph":     "*oTrT",
	"maketitle":     "",
	"title":         "oTrT",
	"author":        "rT",
	"item":          "oT",
	"footnote":      "oVrT",

	// inline formatting
	"emph":   "rT",
	"textbf": "rT",
	"textit": "rT",
	"texttt": "rT",
	"verb":   "*aV",
	"url":    "aV",

	// cross references
	"label": "bV",
	"ref":   "bV",
	"cite":  "oTbV",

	// preamble and configuration
	"documentclass":   "oKbV",
	"usepackage":      "oKbV",
	"includegraphics": "*oKbV",
	"setkeys":         "bVbK",
	"setflag":         "bVbB",
	"hspace":          "*bV",
	"vspace":          "*bV",

	// macro definitions, handled by package macro
	"newcommand":       "*rMoVrM",
	"renewcommand":     "*rMoVrM",
	"newenvironment":   "*bVoVrMrM",
	"renewenvironment": "*bVoVrMrM",

	// math
	"ensuremath": "b$",

	// symbols
	`\`: "*oV",
	"{": "",
	"}": "",
	"%": "",
	" ": "",
	",": "",
	"~": "",
	"_": "",
	"#": "",
	"$": "",
	"&": "",
	"[": "",
	"]": "",
	"-": "",
}

var builtinEnvironments = []struct {
	name  string
	star  bool
	body  BodyType
	shape string
}{
	{"document", false, BodyTokenList, ""},
	{"center", false, BodyTokenList, ""},
	{"quote", false, BodyTokenList, ""},
	{"itemize", false, BodyTokenList, "oK"},
	{"enumerate", false, BodyTokenList, "oK"},
	{"figure", true, BodyTokenList, "oV"},
	{"minipage", false, BodyTokenList, "oVbV"},
	{"tabular", true, BodyTokenList, "oVbV"},
	{"verbatim", true, BodyVerbatim, ""},
	{"code", false, BodyVerbatim, "oK"},
	{"equation", true, BodyMath, ""},
	{"align", true, BodyMath, ""},
	{"metadata", false, BodyYAML, ""},
}

// AddBuiltins registers the built-in commands and environments.
func (r *Registry) AddBuiltins() {
	for name, shape := range builtinCommands {
		params := mustParseShape(shape)
		if err := r.RegisterCommand(name, false, params...); err != nil {
			panic(err)
		}
	}
	for _, env := range builtinEnvironments {
		params := mustParseShape(env.shape)
		if err := r.RegisterEnvironment(env.name, env.star, env.body, params...); err != nil {
			panic(err)
		}
	}
}

func mustParseShape(shape string) []ParameterSpec {
	params, err := ParseShape(shape)
	if err != nil {
		panic(fmt.Sprintf("builtin shape %q: %v", shape, err))
	}
	return params
}
