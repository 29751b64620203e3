// index_test.go -
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

package search

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestIndexAdd(t *testing.T) {
	idx := NewIndex(language.English)
	n := idx.Add("node1.html#sec-3", "The file is open")
	if n != 2 {
		t.Errorf("wrong number of records: %d", n)
	}
	idx.AddStopWords("Open")
	if !idx.IsStopWord("open") || !idx.IsStopWord("the") || idx.IsStopWord("file") {
		t.Error("wrong stop-words")
	}
	idx.Add("node2.html", "open the file")

	expected := []Record{
		{"file", "node1.html#sec-3", 4},
		{"open", "node1.html#sec-3", 12},
		{"file", "node2.html", 9},
	}
	if d := cmp.Diff(expected, idx.Records()); d != "" {
		t.Errorf("wrong records (-want +got):\n%s", d)
	}
}

func TestReadStopWords(t *testing.T) {
	in := "# comment\nfoo\n\n  bar  \n"
	words, err := ReadStopWords(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"foo", "bar"}, words); d != "" {
		t.Errorf("wrong stop-words (-want +got):\n%s", d)
	}
}

func TestWriteXML(t *testing.T) {
	idx := NewIndex(language.German)
	idx.Add("a.html#x", "Datei öffnen")
	idx.Add("b.html", "Datei")

	buf := &bytes.Buffer{}
	err := idx.WriteXML(buf, "1234")
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, part := range []string{
		`<search id="1234" lang="de">`,
		`<word text="datei">`,
		`<ref target="a.html#x" pos="0"></ref>`,
		`<ref target="b.html" pos="0"></ref>`,
		`<word text="öffnen">`,
		`<ref target="a.html#x" pos="6"></ref>`,
	} {
		if !strings.Contains(out, part) {
			t.Errorf("missing %q in output:\n%s", part, out)
		}
	}
	if strings.Index(out, "datei") > strings.Index(out, "öffnen") {
		t.Error("words not sorted")
	}
}

func TestSQLite(t *testing.T) {
	idx := NewIndex(language.English)
	idx.Add("a.html", "zebra crossing")
	idx.Add("b.html", "yellow zebra")

	path := filepath.Join(t.TempDir(), "search.db")
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		// saving twice must not duplicate the records
		err := idx.SaveSQLite(ctx, path)
		if err != nil {
			t.Fatal(err)
		}
	}

	records, err := LoadSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Record{
		{"crossing", "a.html", 6},
		{"yellow", "b.html", 0},
		{"zebra", "a.html", 0},
		{"zebra", "b.html", 7},
	}
	if d := cmp.Diff(expected, records); d != "" {
		t.Errorf("wrong records (-want +got):\n%s", d)
	}
}
