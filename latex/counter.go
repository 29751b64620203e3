// counter.go - section numbers and LaTeX counters
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
	"strings"
)

// sectionNumber holds the numbers of the enclosing sectioning units,
// outermost first: {2, 1} is section 2.1 in a book.
type sectionNumber []int

// step returns the number of the next section at the given level.
// Deeper levels are dropped, and missing outer levels become 0.
func (n sectionNumber) step(level int) sectionNumber {
	next := n.upTo(level)
	next[level-1]++
	return next
}

// upTo returns the numbers of the first depth levels, padded with
// zeros where n is shorter.
func (n sectionNumber) upTo(depth int) sectionNumber {
	res := make(sectionNumber, depth)
	copy(res, n)
	return res
}

func (n sectionNumber) String() string {
	var b strings.Builder
	for i, k := range n {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(k))
	}
	return b.String()
}

// resetCounters restarts all counters which are numbered within
// sections of the given level.
func (conv *converter) resetCounters(level int) {
	for _, ctr := range conv.Counters {
		if ctr.Parent != "" && conv.Levels[ctr.Parent] == level {
			ctr.Value = 0
			ctr.Prefix = conv.Section.upTo(level).String() + "."
		}
	}
}

// clearCounters sets all counters back to their initial state, before
// the document is read again.
func (conv *converter) clearCounters() {
	for _, ctr := range conv.Counters {
		ctr.Value = 0
		ctr.Prefix = ""
	}
	conv.Section = nil
	conv.Page = 0
	conv.indexCount = 0
}

type counterInfo struct {
	Value  int
	Parent string
	Prefix string
}

func (ci *counterInfo) Inc() string {
	ci.Value++
	return ci.String()
}

func (ci *counterInfo) String() string {
	return ci.Prefix + strconv.Itoa(ci.Value)
}
