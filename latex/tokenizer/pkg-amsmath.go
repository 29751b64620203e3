// pkg-amsmath.go -
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

func addAmsmathMacros(p *Tokenizer) {
	// \DeclareMathOperator*{\name}{text}
	p.macros["\\DeclareMathOperator"] = declaringMacro{
		argTypes: "SVV",
		define: func(p *Tokenizer, args []*Arg) {
			p.macros[args[1].String()] = typedMacro("")
		},
	}
	p.macros["\\eqref"] = &defMacro{Count: 1, Body: "(\\ref{#1})"}
	p.macros["\\text"] = typedMacro("A")

	for _, name := range []string{"align", "align*", "equation*"} {
		p.environments[name] = simpleEnv
	}
}

func init() {
	addPackage("amsmath", addAmsmathMacros)
	addPackage("amsfonts", func(p *Tokenizer) {})
	addPackage("amssymb", func(p *Tokenizer) {})
}
