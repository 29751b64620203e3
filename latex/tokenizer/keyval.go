// keyval.go - key=value list arguments
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

import "strings"

// KeyVal is one raw entry of a key=value list.
type KeyVal struct {
	Key   string
	Value string
}

// SplitKeyVal splits a key=value list like "a=1, b={x,y}, c" into
// its entries.  Commas and equal signs inside braces are ignored,
// keys and values are trimmed and one level of braces around a value
// is removed.  A key without a value gets the empty value.
func SplitKeyVal(text string) []KeyVal {
	var res []KeyVal
	for _, item := range splitTopLevel(text, ',') {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		var key, val string
		if parts := splitTopLevel(item, '='); len(parts) > 1 {
			key = parts[0]
			val = strings.Join(parts[1:], "=")
		} else {
			key = item
		}
		res = append(res, KeyVal{
			Key:   strings.TrimSpace(key),
			Value: stripBraces(strings.TrimSpace(val)),
		})
	}
	return res
}

func splitTopLevel(text string, sep byte) []string {
	var res []string
	level := 0
	start := 0
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '{':
			level++
		case c == '}':
			level--
		case c == sep && level == 0:
			res = append(res, text[start:i])
			start = i + 1
		}
	}
	return append(res, text[start:])
}

func stripBraces(s string) string {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return s
	}
	level := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '{':
			level++
		case '}':
			level--
		}
		if level == 0 {
			return s
		}
	}
	return s[1 : len(s)-1]
}

func (p *Tokenizer) parseKeyVal(text string) ([]*Field, error) {
	fields := []*Field{}
	for _, kv := range SplitKeyVal(text) {
		val, err := p.parseString(kv.Value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &Field{Key: kv.Key, Value: val})
	}
	return fields, nil
}
