/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parse

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bennypowers.dev/finl/registry"
	"bennypowers.dev/finl/token"
)

// WriteTree writes toks as an indented outline. Arguments and bodies are
// nested under the token that owns them.
func WriteTree(w io.Writer, toks token.List) {
	writeList(w, toks, 0)
}

func writeList(w io.Writer, toks token.List, depth int) {
	for _, tok := range toks {
		writeToken(w, tok, depth)
	}
}

func writeToken(w io.Writer, tok *token.Token, depth int) {
	pad := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s %s\n", pad, tok.Pos, tok.Kind, strconv.Quote(tok.String()))

	for i, arg := range tok.Args {
		writeArgument(w, i, arg, depth+1)
	}

	if body := tok.Body; body != nil {
		fmt.Fprintf(w, "%s  body %s\n", pad, body.Type)
		switch body.Type {
		case registry.BodyVerbatim, registry.BodyYAML:
			for _, line := range body.Lines {
				fmt.Fprintf(w, "%s    | %s\n", pad, line)
			}
		case registry.BodyMath:
			fmt.Fprintf(w, "%s    %s\n", pad, strconv.Quote(body.Text))
		default:
			writeList(w, body.Tokens, depth+2)
		}
	}
}

func writeArgument(w io.Writer, i int, arg *token.Argument, depth int) {
	pad := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s#%d %s %s", pad, i+1, arg.Format, arg.Type)

	switch {
	case arg.Format == registry.Star:
		fmt.Fprintf(w, " %t\n", arg.Bool)
		return
	case !arg.Present:
		fmt.Fprintln(w, " absent")
		return
	}

	switch arg.Type {
	case registry.Boolean:
		fmt.Fprintf(w, " %t\n", arg.Bool)
	case registry.KeyValue:
		fmt.Fprintln(w)
		for key, value := range arg.KeyValues.All() {
			fmt.Fprintf(w, "%s  %s = %s\n", pad, key, strconv.Quote(value.FormatText()))
		}
	case registry.TokenList, registry.MacroDefList:
		fmt.Fprintln(w)
		writeList(w, arg.Tokens, depth+1)
	default:
		fmt.Fprintf(w, " %s\n", strconv.Quote(arg.Raw))
	}
}
