// pkg-glossaries_test.go - tests for glossary entries
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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestGls(t *testing.T) {
	conv := loadSource(t, nil, texhelpPreamble+
		`\newglossaryentry{api}{name=API,first={application programming interface (API)},description={x}}`)

	cases := []struct {
		in, out string
	}{
		{`\gls{open}`, `<span class="gls">Open</span>`},
		{`\Glspl{folder}`, `<span class="gls">Folders</span>`},
		{`\glsdesc{open}`, `<span class="gls">Open a file</span>`},
		{`\Glsname{folder}`, `<span class="gls">Folder</span>`},
		{`\gls{api}`, `<span class="gls">application programming interface (API)</span>`},
		{`\gls{api}`, `<span class="gls">API</span>`},
	}
	for _, c := range cases {
		got, err := toHTML(conv, c.in)
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if d := cmp.Diff(c.out, got); d != "" {
			t.Errorf("%s: %s", c.in, d)
		}
	}
}

func TestGlsErrors(t *testing.T) {
	conv := loadSource(t, nil, texhelpPreamble)

	cases := []struct {
		in, key string
	}{
		{`\gls{nothing}`, MsgGlossaryEntryUndefined},
		{`\glschildren{nothing}`, MsgGlossaryEntryUndefined},
		{`\glschildren{folder}`, MsgGlossaryChildrenMissing},
	}
	for _, c := range cases {
		_, err := toHTML(conv, c.in)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%s: expected SyntaxError, got %v", c.in, err)
			continue
		}
		if se.Key != c.key {
			t.Errorf("%s: wrong message key %q", c.in, se.Key)
		}
	}
}

func TestGlsChildren(t *testing.T) {
	conv := loadSource(t, nil, texhelpPreamble)
	got, err := toHTML(conv, `\glschildren{file}`)
	if err != nil {
		t.Fatal(err)
	}
	expected := `<ul class="gls-children">` + "\n" +
		`<li><span class="gls">Open</span>: Open a file</li>` + "\n" +
		`</ul>`
	if d := cmp.Diff(expected, got); d != "" {
		t.Error(d)
	}
}

func TestGlsRedefined(t *testing.T) {
	conv := loadSource(t, nil, texhelpPreamble+
		`\newglossaryentry{open}{name=Open,description={Open a document},parent=file}`+"\n"+
		`\newglossaryentry{recent}{name=Recent,description={Recent documents},parent=open}`+"\n"+
		`\newglossaryentry{folder}{name=folder,description={A directory},parent=file}`+"\n")

	if d := cmp.Diff([]string{"open", "folder"}, conv.Glossary["file"].Children); d != "" {
		t.Errorf("wrong children of file (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"recent"}, conv.Glossary["open"].Children); d != "" {
		t.Errorf("wrong children of open (-want +got):\n%s", d)
	}

	// moving an entry removes it from its old parent
	conv = loadSource(t, nil, texhelpPreamble+
		`\newglossaryentry{recent}{name=Recent,description={Files used lately},parent=folder}`+"\n")
	if len(conv.Glossary["open"].Children) != 0 {
		t.Errorf("stale children %q", conv.Glossary["open"].Children)
	}
	got, err := toHTML(conv, `\glschildren{folder}`)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(got, "Recent") != 1 {
		t.Errorf("wrong list %q", got)
	}
}

func TestUndefinedParent(t *testing.T) {
	conv, err := newConverter(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()

	conv.usePackage("glossaries", "")
	err = dNewGlossaryEntry(mustParseArgs(t, `\newglossaryentry{a}{name=A,parent=b}`), conv)
	var se *SyntaxError
	if !errors.As(err, &se) || se.Key != MsgGlossaryEntryUndefined {
		t.Errorf("wrong error %v", err)
	}
}

func TestGlossarySort(t *testing.T) {
	conv, err := newConverter(nil, &Options{Language: language.German})
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()
	conv.usePackage("glossaries", "")

	for _, def := range []string{
		`\newglossaryentry{z}{name=Zebra}`,
		`\newglossaryentry{ae}{name=Äpfel}`,
		`\newglossaryentry{b}{name=banane}`,
		`\newglossaryentry{a}{name=Anker}`,
	} {
		err := dNewGlossaryEntry(mustParseArgs(t, def), conv)
		if err != nil {
			t.Fatal(err)
		}
	}

	got := conv.sortedEntries([]string{"z", "ae", "b", "a"})
	expected := []string{"a", "ae", "b", "z"}
	if d := cmp.Diff(expected, got); d != "" {
		t.Error(d)
	}
}

func TestSyntaxErrorLocalize(t *testing.T) {
	err := &SyntaxError{
		Key:  MsgMessageUndefined,
		Args: []interface{}{"x"},
		Loc:  "a.tex:3",
	}
	cases := []struct {
		lang language.Tag
		out  string
	}{
		{language.English, `a.tex:3: help message "x" is not defined`},
		{language.German, `a.tex:3: Hilfetext "x" ist nicht definiert`},
		{language.French, `a.tex:3: help message "x" is not defined`},
	}
	for _, c := range cases {
		got := err.Localize(c.lang)
		if got != c.out {
			t.Errorf("%s: got %q", c.lang, got)
		}
	}
	if !strings.HasSuffix(err.Error(), "is not defined") {
		t.Errorf("wrong default message %q", err.Error())
	}
}
