// pkg-texhelp.go - argument types for the help document commands
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

func addTexhelpMacros(p *Tokenizer) {
	p.loadPackage("glossaries")
	p.loadPackage("graphicx")
	p.loadPackage("hyperref")

	p.macros["\\helpmsg"] = typedMacro("VA")
	p.macros["\\icon"] = typedMacro("OV")
	p.macros["\\keys"] = typedMacro("V")
	p.macros["\\menu"] = typedMacro("V")
	p.macros["\\newhelpmsg"] = typedMacro("VA")
	p.macros["\\shortcut"] = typedMacro("V")
}

func init() {
	addPackage("texhelp", addTexhelpMacros)
}
