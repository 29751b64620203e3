// words_test.go -
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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestWords(t *testing.T) {
	cases := []struct {
		in   string
		lang language.Tag
		out  []Word
	}{
		{"", language.English, nil},
		{"Hello, Wörld 42!", language.English,
			[]Word{{"hello", 0}, {"wörld", 7}, {"42", 13}}},
		{"Café café", language.French,
			[]Word{{"café", 0}, {"café", 5}}},
		// positions count the runes of the decomposed input
		{"cafe\u0301 bar", language.French,
			[]Word{{"caf\u00e9", 0}, {"bar", 6}}},
		{"İSTANBUL", language.Turkish,
			[]Word{{"istanbul", 0}}},
		{"  ... -- !", language.English, nil},
	}
	for i, test := range cases {
		out := Words(test.in, test.lang)
		if d := cmp.Diff(test.out, out); d != "" {
			t.Errorf("%d: %q: wrong words (-want +got):\n%s", i, test.in, d)
		}
	}
}

func TestStopWords(t *testing.T) {
	en := StopWords(language.BritishEnglish)
	if !en["the"] || en["file"] {
		t.Error("wrong English stop-words")
	}
	de := StopWords(language.MustParse("de-CH"))
	if !de["und"] || de["the"] {
		t.Error("wrong German stop-words")
	}
}
