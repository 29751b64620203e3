// token.go -
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
	"strconv"
	"strings"
)

// TokenType is used to enumerate different types of token
type TokenType int

// The different token types used by this package.
const (
	TokenMacro TokenType = iota
	TokenEmptyLine
	TokenComment
	TokenSpace
	TokenWord
	TokenOther
	TokenVerbatim
)

// Token contains information about a single syntactic unit in the TeX
// source.
type Token struct {
	// Type describes which kind of token this is.
	Type TokenType

	// For TokenMacro, this is the name of the macro, including the
	// leading backslash.  For most other token types, this is the
	// textual content of the token.
	Name string

	// For tokens of type TokenMacro, this field specifies the values
	// of the macro arguments.  Unused for all other token types.
	Args []*Arg

	// Loc gives the source position of a macro token, in the form
	// "file:line".  Unused for all other token types.
	Loc string
}

// Arg specifies a single macro argument.
type Arg struct {
	Optional bool
	Value    TokenList

	// Fields holds the entries of a key=value list argument.  If
	// Fields is non-nil, Value is unused.
	Fields []*Field
}

// Field is one entry of a key=value list argument.
type Field struct {
	Key   string
	Value TokenList
}

func (arg *Arg) String() string {
	if arg.Fields != nil {
		var parts []string
		for _, f := range arg.Fields {
			parts = append(parts, f.Key+"="+f.Value.FormatText())
		}
		return strings.Join(parts, ",")
	}
	return arg.Value.FormatText()
}

// Field returns the value of the given key in a key=value list
// argument.  The second return value indicates whether the key was
// present.
func (arg *Arg) Field(key string) (TokenList, bool) {
	for _, f := range arg.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// IsStar reports whether an optional star argument was given.
func (arg *Arg) IsStar() bool {
	return len(arg.Value) == 1 && arg.Value[0].Name == "*"
}

func verbatim(s string) *Token {
	return &Token{
		Type: TokenVerbatim,
		Name: s,
	}
}

// TokenList describes tokenized data in the argument of a macro call.
type TokenList []*Token

// FormatText converts the tokens back into LaTeX source.
func (toks TokenList) FormatText() string {
	var res []string
	mayNeedSpace := false
	for _, tok := range toks {
		switch tok.Type {
		case TokenMacro:
			res = append(res, tok.Name)
			for _, arg := range tok.Args {
				text := arg.String()
				if arg.Optional {
					if text != "" {
						text = "[" + text + "]"
					}
				} else {
					text = "{" + text + "}"
				}
				res = append(res, text)
			}
		case TokenComment, TokenEmptyLine:
			// pass
		case TokenSpace:
			res = append(res, " ")
		case TokenWord:
			if mayNeedSpace {
				res = append(res, " "+tok.Name)
			} else {
				res = append(res, tok.Name)
			}
		case TokenOther, TokenVerbatim:
			res = append(res, tok.Name)
		default:
			panic("invalid token type " + strconv.Itoa(int(tok.Type)))
		}
		mayNeedSpace = tok.Type == TokenMacro && len(tok.Args) == 0
	}
	return strings.Join(res, "")
}

// FormatMaths converts the tokens of a formula back into LaTeX
// source, dropping white space where TeX would ignore it.
func (toks TokenList) FormatMaths() string {
	var res []string
	mayNeedSpace := false
	for _, tok := range toks {
		switch tok.Type {
		case TokenMacro:
			res = append(res, tok.Name)
			for _, arg := range tok.Args {
				if tok.Name == "\\mbox" || tok.Name == "\\text" {
					res = append(res, "{"+arg.Value.FormatText()+"}")
				} else if arg.Optional {
					val := arg.Value.FormatMaths()
					if val != "" {
						res = append(res, "["+val+"]")
					}
				} else {
					res = append(res, "{"+arg.Value.FormatMaths()+"}")
				}
			}
		case TokenComment, TokenSpace, TokenEmptyLine:
			// pass
		case TokenWord:
			if mayNeedSpace {
				res = append(res, " "+tok.Name)
			} else {
				res = append(res, tok.Name)
			}
		case TokenOther, TokenVerbatim:
			res = append(res, tok.Name)
		default:
			panic("invalid token type " + strconv.Itoa(int(tok.Type)))
		}
		if tok.Type != TokenSpace {
			mayNeedSpace = tok.Type == TokenMacro && len(tok.Args) == 0
		}
	}
	return strings.Join(res, "")
}

// Split divides the list at top-level occurrences of the given
// separator character.  Separators inside braces are not considered,
// and one level of braces around each part is removed.  Leading and
// trailing spaces of each part are dropped.
func (toks TokenList) Split(sep string) []TokenList {
	var res []TokenList
	var cur TokenList
	depth := 0
	for _, tok := range toks {
		if tok.Type == TokenOther {
			switch {
			case tok.Name == "{":
				depth++
			case tok.Name == "}":
				depth--
			case tok.Name == sep && depth == 0:
				res = append(res, cur.trim())
				cur = nil
				continue
			}
		}
		cur = append(cur, tok)
	}
	return append(res, cur.trim())
}

func (toks TokenList) trim() TokenList {
	for len(toks) > 0 && toks[0].Type == TokenSpace {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Type == TokenSpace {
		toks = toks[:len(toks)-1]
	}
	n := len(toks)
	if n < 2 || !isOther(toks[0], "{") || !isOther(toks[n-1], "}") {
		return toks
	}
	depth := 0
	for _, tok := range toks[:n-1] {
		if isOther(tok, "{") {
			depth++
		} else if isOther(tok, "}") {
			depth--
		}
		if depth == 0 {
			// the first brace closes before the end
			return toks
		}
	}
	return toks[1 : n-1]
}

func isOther(tok *Token, name string) bool {
	return tok.Type == TokenOther && tok.Name == name
}
