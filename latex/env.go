// env.go -
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

import "github.com/seehuhn/texhelp/latex/tokenizer"

type environment struct {
	// Tag is the HTML element used for the environment.
	Tag        string
	CSSClasses []string

	// Prefix and Counter are used for numbered environments.
	Prefix  string
	Counter string

	// Math is set for displayed maths environments.
	Math bool
}

type isEnd func(token *tokenizer.Token) bool

type mathInfo struct {
	Env     string
	Display bool
	Counter string
}

// IsMathStart checks whether token starts a formula.  If so, the
// returned function recognises the end of the formula.
func (conv *converter) IsMathStart(token *tokenizer.Token) (*mathInfo, isEnd) {
	if token.Type == tokenizer.TokenOther &&
		(token.Name == "$" || token.Name == "$$") {
		delim := token.Name
		endFn := func(token *tokenizer.Token) bool {
			return token.Type == tokenizer.TokenOther && token.Name == delim
		}
		return &mathInfo{Env: delim, Display: delim == "$$"}, endFn
	}
	if token.Type != tokenizer.TokenMacro || token.Name != "\\begin" {
		return nil, nil
	}

	envName := token.Args[0].String()
	env := conv.Envs[envName]
	if env == nil || !env.Math {
		return nil, nil
	}

	endFn := func(token *tokenizer.Token) bool {
		if token.Type != tokenizer.TokenMacro || token.Name != "\\end" {
			return false
		}
		return token.Args[0].String() == envName
	}
	info := &mathInfo{
		Env:     envName,
		Display: true,
		Counter: env.Counter,
	}
	return info, endFn
}
