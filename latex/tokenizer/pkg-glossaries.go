// pkg-glossaries.go - argument types for the "glossaries" package
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

func addGlossariesMacros(p *Tokenizer) {
	p.macros["\\newglossaryentry"] = typedMacro("VK")
	p.macros["\\glsadd"] = typedMacro("PV")
	p.macros["\\glschildren"] = typedMacro("V")
	p.macros["\\printglossary"] = typedMacro("P")
	p.macros["\\makeglossaries"] = typedMacro("")

	// \gls[options]{label}[insert]
	for _, name := range []string{
		"\\gls", "\\Gls", "\\glspl", "\\Glspl",
		"\\glstext", "\\Glstext", "\\glsname", "\\Glsname",
		"\\glsdesc", "\\Glsdesc", "\\glssymbol",
	} {
		p.macros[name] = typedMacro("PVO")
	}
}

func init() {
	addPackage("glossaries", addGlossariesMacros)
}
