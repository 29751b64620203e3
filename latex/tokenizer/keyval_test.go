// keyval_test.go -
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

func TestSplitKeyVal(t *testing.T) {
	testCases := []struct {
		in  string
		out []KeyVal
	}{
		{"", nil},
		{"width=3cm", []KeyVal{{"width", "3cm"}}},
		{" a = 1 , b", []KeyVal{{"a", "1"}, {"b", ""}}},
		{"name={x, y},text={{z}}", []KeyVal{{"name", "x, y"}, {"text", "{z}"}}},
		{"sort={a}{b}", []KeyVal{{"sort", "{a}{b}"}}},
		{"url=a=b", []KeyVal{{"url", "a=b"}}},
		{`desc={\{, \}},,`, []KeyVal{{"desc", `\{, \}`}}},
	}
	for i, testCase := range testCases {
		got := SplitKeyVal(testCase.in)
		if d := cmp.Diff(testCase.out, got); d != "" {
			t.Errorf("%d: wrong result (-want +got):\n%s", i, d)
		}
	}
}
