// writer_test.go - tests for the paragraph writer
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
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seehuhn/texhelp/help"
)

type textRecord struct {
	Context, Text string
}

// memBook is a help.Writer which keeps everything in memory.
type memBook struct {
	Title    string
	Authors  []string
	Sections []*help.Section
	Targets  []*help.Target
	Texts    []textRecord
	Chunks   []string

	page int
}

func (b *memBook) AddTitle(title string, authors []string) error {
	b.Title = title
	b.Authors = authors
	return nil
}

func (b *memBook) AddSection(sec *help.Section) error {
	if sec.NewPage {
		b.page++
	}
	b.Sections = append(b.Sections, sec)
	return nil
}

func (b *memBook) AddTarget(t *help.Target) {
	if t.Page == "" {
		t.Page = b.Page()
	}
	b.Targets = append(b.Targets, t)
}

func (b *memBook) AddText(context, text string) {
	b.Texts = append(b.Texts, textRecord{context, strings.Join(strings.Fields(text), " ")})
}

func (b *memBook) RegisterFile(baseName, mimeType string) *help.File {
	return &help.File{Path: "img/" + baseName, MediaType: mimeType}
}

func (b *memBook) CreateFile(file *help.File) (io.WriteCloser, error) {
	return nopCloser{io.Discard}, nil
}

func (b *memBook) WriteString(s string) error {
	b.Chunks = append(b.Chunks, s)
	return nil
}

func (b *memBook) Page() string {
	return help.PageName(b.page)
}

func (b *memBook) Flush() error {
	return nil
}

func (b *memBook) String() string {
	return strings.Join(b.Chunks, "")
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

func TestWriterBlocks(t *testing.T) {
	book := &memBook{}
	w := newWriter(book)

	w.WriteString("Hello")
	w.EndWord()
	w.WriteString("world")
	err := w.EndParagraph()
	if err != nil {
		t.Fatal(err)
	}
	err = w.StartBlock("ul", []string{"latex-itemize"}, "list")
	if err != nil {
		t.Fatal(err)
	}
	err = w.StartItem("")
	if err != nil {
		t.Fatal(err)
	}
	w.WriteString("one")
	err = w.EndBlock()
	if err != nil {
		t.Fatal(err)
	}
	err = w.Flush()
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		"<p>Hello world</p>\n",
		"<ul id=\"list\" class=\"latex-itemize\">\n<li>\n<p>one</p>\n</li>\n</ul>\n",
	}
	if d := cmp.Diff(expected, book.Chunks); d != "" {
		t.Error(d)
	}

	expectedTexts := []textRecord{
		{"index.html", "Hello world"},
		{"index.html#list", "one"},
	}
	if d := cmp.Diff(expectedTexts, book.Texts); d != "" {
		t.Error(d)
	}
}

func TestWriterSectionContext(t *testing.T) {
	book := &memBook{}
	w := newWriter(book)

	err := w.AddSection(&help.Section{Level: 1, Title: "A", ID: "sec-a", NewPage: true})
	if err != nil {
		t.Fatal(err)
	}
	w.WriteString("text")
	err = w.Flush()
	if err != nil {
		t.Fatal(err)
	}

	expected := []textRecord{{"node1.html#sec-a", "text"}}
	if d := cmp.Diff(expected, book.Texts); d != "" {
		t.Error(d)
	}
}

func TestWriterDescription(t *testing.T) {
	book := &memBook{}
	w := newWriter(book)

	err := w.StartBlock("dl", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range []string{"a", "b"} {
		err = w.StartItem("<b>" + item + "</b>")
		if err != nil {
			t.Fatal(err)
		}
		w.WriteString(strings.ToUpper(item))
	}
	err = w.EndBlock()
	if err != nil {
		t.Fatal(err)
	}

	expected := "<dl>\n" +
		"<dt><b>a</b></dt>\n<dd>\n<p>A</p>\n</dd>\n" +
		"<dt><b>b</b></dt>\n<dd>\n<p>B</p>\n</dd>\n" +
		"</dl>\n"
	if d := cmp.Diff(expected, book.String()); d != "" {
		t.Error(d)
	}
}

func TestWriterLineLength(t *testing.T) {
	book := &memBook{}
	w := newWriter(book)
	for i := 0; i < 100; i++ {
		w.WriteString("word")
		w.EndWord()
	}
	err := w.Flush()
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(book.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatal("no line breaks")
	}
	for _, line := range lines {
		if len(line) > outputLineWidth {
			t.Errorf("line too long: %q", line)
		}
	}
}

func TestTextContent(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"<p>a <b>b</b> c</p>", "a b c"},
		{"<dt>x</dt><dd>y</dd>", "x y"},
		{"<p>A&amp;B&nbsp;C</p>", "A&B C"},
		{"a<br/>b", "a b"},
	}
	for _, c := range cases {
		got := plainText(c.in)
		if got != c.out {
			t.Errorf("%q: got %q, expected %q", c.in, got, c.out)
		}
	}
}
