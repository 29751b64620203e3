// pkg-amsthm.go - theorem environments
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

func addAmsthmMacros(conv *converter, options string) {
	conv.PkgState["amsthm@style"] = "plain"
	conv.Macros["\\newtheorem"] = declaration(dNewtheorem)
	conv.Macros["\\theoremstyle"] = declaration(dTheoremstyle)
	conv.Envs["proof"] = &environment{
		CSSClasses: []string{"amsthm-proof"},
		Prefix:     "Proof",
	}
}

func dNewtheorem(args []*tokenizer.Arg, conv *converter) error {
	name := args[1].String()
	env := &environment{
		Tag:        "div",
		CSSClasses: []string{"amsthm-" + conv.PkgState["amsthm@style"]},
		Prefix:     args[3].String(),
	}
	if !args[0].IsStar() {
		counter := args[2].String()
		if counter == "" {
			counter = name
		}
		env.Counter = "amsthm@" + counter
		if conv.Counters[env.Counter] == nil {
			conv.Counters[env.Counter] = &counterInfo{Parent: args[4].String()}
		}
	}
	conv.Envs[name] = env
	return nil
}

func dTheoremstyle(args []*tokenizer.Arg, conv *converter) error {
	conv.PkgState["amsthm@style"] = args[0].String()
	return nil
}

func init() {
	addPackage("amsthm", addAmsthmMacros)
}
