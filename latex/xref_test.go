// xref_test.go - tests for labels and index entries
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package latex

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/seehuhn/texhelp/help"
)

func TestIndexAnchors(t *testing.T) {
	src := `\documentclass{texhelp}
\begin{document}
\emph{Start\label{start}}
\chapter{Intro\index{intro}}
\tableofcontents
\textbf{Alpha\index{alpha}} and beta\index{beta}.
\begin{figure}\caption{Gamma\label{gam}}\end{figure}
See \ref{gam}.
\end{document}
`
	book := &memBook{}
	conv := loadSource(t, book, src)
	err := conv.Pass2()
	if err != nil {
		t.Fatal(err)
	}

	var terms []indexTerm
	for _, term := range conv.IndexTerms {
		terms = append(terms, *term)
	}
	expected := []indexTerm{
		{Term: "intro", ID: "idx-1", Page: "node1.html"},
		{Term: "alpha", ID: "idx-2", Page: "node1.html"},
		{Term: "beta", ID: "idx-3", Page: "node1.html"},
	}
	if d := cmp.Diff(expected, terms); d != "" {
		t.Errorf("wrong index terms (-want +got):\n%s", d)
	}

	anchors := map[string]string{}
	for _, target := range book.Targets {
		if target.Type == "index" {
			anchors[target.Key] = target.Anchor
		}
	}
	if d := cmp.Diff(map[string]string{"intro": "idx-1", "alpha": "idx-2", "beta": "idx-3"}, anchors); d != "" {
		t.Errorf("wrong index targets (-want +got):\n%s", d)
	}

	// every anchor is written exactly once, after the indexed word
	out := book.String()
	last := 0
	for _, word := range []string{"Alpha", `id="idx-2"`, "beta", `id="idx-3"`} {
		k := strings.Index(out[last:], word)
		if k < 0 {
			t.Fatalf("%q missing or out of order in %q", word, out)
		}
		last += k + len(word)
	}
	if len(book.Sections) != 1 || strings.Count(book.Sections[0].Title, `id="idx-1"`) != 1 {
		t.Errorf("wrong section titles %#v", book.Sections)
	}
	if strings.Contains(out, `id="idx-1"`) {
		t.Error("index anchor copied into the table of contents")
	}
	for _, id := range []string{"idx-2", "idx-3", "start", "gam"} {
		if n := strings.Count(out, `id="`+id+`"`); n != 1 {
			t.Errorf("anchor %q written %d times", id, n)
		}
	}
	if strings.Contains(out, "idx-4") {
		t.Error("extra index anchor")
	}

	gam := conv.findLabel("gam")
	if gam == nil {
		t.Fatal("nested label not found")
	}
	if gam.Type != "figure" || gam.Name != "1.1" || gam.Page != "node1.html" {
		t.Errorf("wrong label %#v", gam)
	}
	if !strings.Contains(out, `<a href="node1.html#gam">1.1</a>`) {
		t.Errorf("missing link to figure in %q", out)
	}
	start := conv.findLabel("start")
	if start == nil || start.Page != help.PageName(0) {
		t.Errorf("wrong label %#v", start)
	}
}
