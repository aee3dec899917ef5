/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokens

import (
	"bytes"
	"testing"

	"bennypowers.dev/finl/parser"
	"bennypowers.dev/finl/registry"
)

func TestWriteTable(t *testing.T) {
	toks, err := parser.Tokenize("\\emph{hi}\n\n% note\nx", registry.NewWithBuiltins())
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	var buf bytes.Buffer
	WriteTable(&buf, toks)

	want := "" +
		"1:1      CommandName      \"\\\\emph\"\n" +
		"1:6      GroupOpen        \"{\"\n" +
		"1:7      Text             \"hi\"\n" +
		"1:9      GroupClose       \"}\"\n" +
		"1:10     ParagraphBreak   \"\\n\\n\"\n" +
		"4:1      Text             \"x\"\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteTable() =\n%s\nwant:\n%s", got, want)
	}
}
