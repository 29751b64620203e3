// comment_test.go - tests for comment handling
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

package tokenizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadComment(t *testing.T) {
	cases := []struct {
		in, comment, next string
	}{
		{"% one\n% two \t \n\t % three\n   xxx", " one\n two\n three", "xxx"},
		{"%\nword", "", "word"},
		{"% last line", " last line", ""},
		{"% one\r\n  % two\r\nx", " one\n two", "x"},
		// a blank line after a comment still ends the paragraph
		{"% one\n\nxxx", " one", "\n\nxxx"},
		{"% one\n  \t\nxxx", " one", "\n\nxxx"},
	}
	for _, c := range cases {
		p := NewTokenizer()
		p.Prepend([]byte(c.in), "test")
		p.Next()
		comment, err := p.readComment()
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if comment != c.comment {
			t.Errorf("%q: wrong comment %q", c.in, comment)
		}
		if next := remaining(t, p); next != c.next {
			t.Errorf("%q: wrong remainder %q", c.in, next)
		}
	}
}

func TestCommentTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []TokenType
	}{
		// the comment swallows the line break
		{"foo% note\nbar", []TokenType{TokenWord, TokenComment, TokenWord}},
		{"foo % note\n  bar", []TokenType{TokenWord, TokenSpace, TokenComment, TokenWord}},
		{"foo% note\n\nbar", []TokenType{TokenWord, TokenComment, TokenEmptyLine, TokenWord}},
	}
	for _, c := range cases {
		var got []TokenType
		for _, tok := range tokenize(t, c.in) {
			got = append(got, tok.Type)
		}
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("%q: wrong tokens (-want +got):\n%s", c.in, d)
		}
	}
}
