// words.go - split text into words for the search index
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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Word is a single word found in a text.
type Word struct {
	// Text is the normalised, lower-case form of the word.
	Text string

	// Pos is the offset of the word in the original, unnormalised
	// text, counted in runes.
	Pos int
}

// A Splitter breaks text into words, using the Unicode word boundary
// rules (UAX #29) and the case mapping rules of a given language.
type Splitter struct {
	lower cases.Caser
}

// NewSplitter returns a Splitter for the given language.
func NewSplitter(lang language.Tag) *Splitter {
	return &Splitter{
		lower: cases.Lower(lang),
	}
}

// Words returns the words of text, in order.  Segments which contain
// neither letters nor digits (white space, punctuation) are skipped,
// but still count for the positions of later words.
func (s *Splitter) Words(text string) []Word {
	seg := segment.NewSegmenter(uax29.NewWordBreaker(1))
	seg.Init(strings.NewReader(text))

	var res []Word
	pos := 0
	for seg.Next() {
		part := seg.Text()
		if isWord(part) {
			res = append(res, Word{
				Text: s.lower.String(norm.NFC.String(part)),
				Pos:  pos,
			})
		}
		pos += utf8.RuneCountInString(part)
	}
	return res
}

// Words splits text into words using the rules for the given
// language.
func Words(text string, lang language.Tag) []Word {
	return NewSplitter(lang).Words(text)
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
