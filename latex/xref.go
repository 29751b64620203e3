// xref.go - labels and link targets
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
	"strconv"

	"github.com/seehuhn/texhelp/latex/tokenizer"
)

type xRef struct {
	Label string
	Page  string
	ID    string
	Pos   int
	Type  string
	Name  string
}

// Href returns the link target for the label.
func (xr *xRef) Href() string {
	return xr.Page + "#" + xr.ID
}

type tocEntry struct {
	Level  int
	Number string
	Title  tokenizer.TokenList
	Page   string
	Pos    int
}

type indexTerm struct {
	Term string
	ID   string
	Page string
}

// normaliseID converts a label into a string which can be used as an
// HTML id attribute.
func normaliseID(label string) string {
	var chars []byte
	hyphenSeen := false
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !(isLetter(c) || isDigit(c) || c == '_' || c == ':' || c == '.') {
			c = '-'
		}
		if c == '-' && hyphenSeen {
			continue
		}
		if len(chars) == 0 && !isLetter(c) {
			chars = append(chars, 'x')
		}
		chars = append(chars, c)
		hyphenSeen = c == '-'
	}
	if len(chars) == 0 {
		return "x"
	}
	return string(chars)
}

func xRefNormalise(label string, used []*xRef) string {
	base := normaliseID(label)
	res := base
	sfx := 2
retry:
	for _, xr := range used {
		if xr.ID == res {
			res = base + strconv.Itoa(sfx)
			sfx++
			goto retry
		}
	}
	return res
}

func (conv *converter) xRefLookup(pos int) string {
	for _, label := range conv.Labels {
		if label.Pos == pos {
			return label.ID
		}
	}
	return ""
}

func (conv *converter) findLabel(name string) *xRef {
	for _, label := range conv.Labels {
		if label.Label == name {
			return label
		}
	}
	return nil
}

// sectionID returns the anchor ID for the section started at the
// given token position.
func (conv *converter) sectionID(pos int) string {
	id := conv.xRefLookup(pos)
	if id == "" {
		id = "sec-" + strconv.Itoa(pos)
	}
	return id
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
