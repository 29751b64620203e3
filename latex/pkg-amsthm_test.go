// pkg-amsthm_test.go - tests for theorem environments
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
)

func TestNewTheorem(t *testing.T) {
	src := `\usepackage{amsthm}%
\newtheorem{theorem}{Abc}[section]
\newtheorem{lemma}[theorem]{Def}
\newtheorem*{remark}{Remark}`

	conv := loadSource(t, nil, src)

	theorem := conv.Envs["theorem"]
	if theorem == nil {
		t.Fatal("theorem environment missing")
	}
	if theorem.Prefix != "Abc" {
		t.Error("wrong theorem prefix", theorem.Prefix)
	}
	lemma := conv.Envs["lemma"]
	if lemma == nil {
		t.Fatal("lemma environment missing")
	}
	if lemma.Prefix != "Def" {
		t.Error("wrong lemma prefix", lemma.Prefix)
	}
	if theorem.Counter != lemma.Counter {
		t.Error("sharing counters failed")
	}
	if ctr := conv.Counters[theorem.Counter]; ctr == nil || ctr.Parent != "section" {
		t.Error("wrong parent counter")
	}
	remark := conv.Envs["remark"]
	if remark == nil {
		t.Fatal("remark environment missing")
	}
	if remark.Counter != "" {
		t.Error("unnumbered theorem has a counter")
	}
}

func TestTheoremOutput(t *testing.T) {
	src := `\documentclass{article}
\usepackage{amsthm}
\newtheorem{theorem}{Theorem}[section]
\theoremstyle{definition}
\newtheorem{definition}[theorem]{Definition}
\begin{document}
\section{One}
\begin{theorem}[Main]\label{main}
Text.
\end{theorem}
\begin{definition}
More.
\end{definition}
\section{Two}
\begin{theorem}
Again.
\end{theorem}
\end{document}
`
	book := &memBook{}
	conv := loadSource(t, book, src)
	err := conv.Pass2()
	if err != nil {
		t.Fatal(err)
	}
	out := book.String()

	for _, frag := range []string{
		`<div id="main" class="latex-theorem amsthm-plain">`,
		"<b>Theorem\u00a01.1 (Main).</b>",
		`class="latex-definition amsthm-definition"`,
		"<b>Definition\u00a01.2.</b>",
		"<b>Theorem\u00a02.1.</b>",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("%q not found in output", frag)
		}
	}

	label := conv.findLabel("main")
	if label == nil || label.Name != "1.1" || label.Type != "theorem" {
		t.Errorf("wrong label %v", label)
	}
}
