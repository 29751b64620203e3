// macros.go -
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
	"bytes"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/seehuhn/texhelp/latex/scanner"
)

type pkgInitFunc func(p *Tokenizer)

var pkgInit map[string]pkgInitFunc

func addPackage(name string, init pkgInitFunc) {
	if pkgInit == nil {
		pkgInit = make(map[string]pkgInitFunc)
	}
	pkgInit[name] = init
}

func (p *Tokenizer) loadPackage(name string) bool {
	if p.loaded[name] {
		return true
	}
	load := pkgInit[name]
	if load == nil {
		return false
	}
	p.loaded[name] = true
	load(p)
	return true
}

type macro interface {
	ReadArgs(p *Tokenizer, name string) (TokenList, error)
}

type macroFunc func(p *Tokenizer, name string) (TokenList, error)

func (mf macroFunc) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	return mf(p, name)
}

func (p *Tokenizer) addBuiltinMacros() {
	// builtin help document structure
	p.macros["\\helpauthor"] = typedMacro("A")
	p.macros["\\helpmaketitle"] = typedMacro("")
	p.macros["\\helpsection"] = typedMacro("VSOA")
	p.macros["\\helptitle"] = typedMacro("A")

	// TeX/LaTeX macros
	p.macros["\\ "] = &defMacro{Count: 0, Body: " "}
	p.macros["\\,"] = typedMacro("")
	p.macros["\\\\"] = typedMacro("O")
	p.macros["\\LaTeX"] = typedMacro("")
	p.macros["\\TeX"] = typedMacro("")
	p.macros["\\alpha"] = typedMacro("")
	p.macros["\\approx"] = typedMacro("")
	p.macros["\\beta"] = typedMacro("")
	p.macros["\\bigl"] = typedMacro("")
	p.macros["\\bigm"] = typedMacro("")
	p.macros["\\bigr"] = typedMacro("")
	p.macros["\\caption"] = typedMacro("OA")
	p.macros["\\chi"] = typedMacro("")
	p.macros["\\colon"] = typedMacro("")
	p.macros["\\def"] = macroFunc(parseDef)
	p.macros["\\delta"] = typedMacro("")
	p.macros["\\documentclass"] = macroFunc(parseDocumentclass)
	p.macros["\\dots"] = typedMacro("")
	p.macros["\\emph"] = typedMacro("A")
	p.macros["\\end"] = typedMacro("V")
	p.macros["\\epsilon"] = typedMacro("")
	p.macros["\\eta"] = typedMacro("")
	p.macros["\\frac"] = typedMacro("AA")
	p.macros["\\gamma"] = typedMacro("")
	p.macros["\\hskip"] = macroFunc(parseHskip)
	p.macros["\\in"] = typedMacro("")
	p.macros["\\include"] = macroFunc(parseInput)
	p.macros["\\index"] = typedMacro("V")
	p.macros["\\infty"] = typedMacro("")
	p.macros["\\input"] = macroFunc(parseInput)
	p.macros["\\int"] = typedMacro("")
	p.macros["\\iota"] = typedMacro("")
	p.macros["\\item"] = typedMacro("O")
	p.macros["\\kappa"] = typedMacro("")
	p.macros["\\label"] = typedMacro("V")
	p.macros["\\lambda"] = typedMacro("")
	p.macros["\\ldots"] = typedMacro("")
	p.macros["\\mathcal"] = typedMacro("")
	p.macros["\\mbox"] = typedMacro("A")
	p.macros["\\mu"] = typedMacro("")
	p.macros["\\neq"] = typedMacro("")
	p.macros["\\nu"] = typedMacro("")
	p.macros["\\omega"] = typedMacro("")
	p.macros["\\pageref"] = typedMacro("V")
	p.macros["\\par"] = typedMacro("")
	p.macros["\\phi"] = typedMacro("")
	p.macros["\\pi"] = typedMacro("")
	p.macros["\\psi"] = typedMacro("")
	p.macros["\\ref"] = typedMacro("V")
	p.macros["\\rho"] = typedMacro("")
	p.macros["\\sigma"] = typedMacro("")
	p.macros["\\sum"] = typedMacro("")
	p.macros["\\tableofcontents"] = typedMacro("")
	p.macros["\\tau"] = typedMacro("")
	p.macros["\\textbf"] = typedMacro("A")
	p.macros["\\textit"] = typedMacro("A")
	p.macros["\\textsf"] = typedMacro("A")
	p.macros["\\texttt"] = typedMacro("A")
	p.macros["\\theta"] = typedMacro("")
	p.macros["\\times"] = typedMacro("")
	p.macros["\\to"] = typedMacro("")
	p.macros["\\today"] = typedMacro("")
	p.macros["\\underline"] = typedMacro("A")
	p.macros["\\usepackage"] = macroFunc(parseUsepackage)
	p.macros["\\varepsilon"] = typedMacro("")
	p.macros["\\varphi"] = typedMacro("")
	p.macros["\\verb"] = macroFunc(parseVerb)
	p.macros["\\xi"] = typedMacro("")
	p.macros["\\zeta"] = typedMacro("")
	for _, c := range []string{"{", "}", "%", "&", "#", "_", "$"} {
		p.macros["\\"+c] = typedMacro("")
	}

	p.environments["center"] = simpleEnv
	p.environments["description"] = simpleEnv
	p.environments["document"] = simpleEnv
	p.environments["enumerate"] = simpleEnv
	p.environments["equation"] = simpleEnv
	p.environments["figure"] = typedEnv("O")
	p.environments["itemize"] = simpleEnv
	p.environments["quote"] = simpleEnv
	p.environments["verbatim"] = verbatimEnv("%verbatim%")
}

func parseDocumentclass(p *Tokenizer, name string) (TokenList, error) {
	options, err := p.readOptionalArg()
	if err != nil {
		return nil, err
	}
	class, err := p.readMandatoryArg()
	if err != nil {
		return nil, err
	}

	p.macros["\\author"] = letMacro("\\helpauthor")
	p.macros["\\maketitle"] = letMacro("\\helpmaketitle")
	p.macros["\\title"] = letMacro("\\helptitle")
	switch class {
	case "article":
		p.macros["\\section"] = letMacro("\\helpsection{1}")
		p.macros["\\subsection"] = letMacro("\\helpsection{2}")
		p.macros["\\subsubsection"] = letMacro("\\helpsection{3}")
	case "report", "book", "texhelp":
		p.macros["\\chapter"] = letMacro("\\helpsection{1}")
		p.macros["\\section"] = letMacro("\\helpsection{2}")
		p.macros["\\subsection"] = letMacro("\\helpsection{3}")
		p.macros["\\subsubsection"] = letMacro("\\helpsection{4}")
		if class == "texhelp" {
			p.loadPackage("texhelp")
		}
	default:
		log.Println("unknown document class", class)
	}

	tok := &Token{
		Type: TokenMacro,
		Name: name,
		Args: []*Arg{
			{
				Optional: true,
				Value:    TokenList{verbatim(options)},
			},
			{
				Optional: false,
				Value:    TokenList{verbatim(class)},
			},
		},
	}
	return TokenList{tok}, nil
}

func parseUsepackage(p *Tokenizer, name string) (TokenList, error) {
	var res TokenList

	options, err := p.readOptionalArg()
	if err != nil {
		return nil, err
	}
	packages, err := p.readMandatoryArg()
	if err != nil {
		return nil, err
	}

	for _, pkg := range strings.Split(packages, ",") {
		pkg = strings.TrimSpace(pkg)
		if pkg == "" {
			continue
		}

		if !p.loadPackage(pkg) {
			log.Printf("unknown usepackage %q", pkg)
		}

		tok := &Token{
			Type: TokenMacro,
			Name: name,
			Args: []*Arg{
				{
					Optional: true,
					Value:    TokenList{verbatim(options)},
				},
				{
					Optional: false,
					Value:    TokenList{verbatim(pkg)},
				},
			},
		}
		res = append(res, tok)
	}
	return res, nil
}

func parseInput(p *Tokenizer, _ string) (TokenList, error) {
	fileName, err := p.readMandatoryArg()
	if err != nil {
		return nil, err
	}
	fileName = strings.TrimSpace(fileName)
	if filepath.Ext(fileName) == "" {
		fileName += ".tex"
	}
	err = p.Include(fileName)
	if err != nil {
		return nil, p.MakeError(err.Error())
	}
	return nil, nil
}

func parseDef(p *Tokenizer, _ string) (TokenList, error) {
	defName, err := p.readMacroName()
	if err != nil {
		return nil, err
	}

	count := 0
	idx := 1
	for p.Next() {
		iStr := "#" + strconv.Itoa(idx)
		idx++

		buf, err := p.Peek()
		if err != nil {
			return nil, err
		}
		if bytes.HasPrefix(buf, []byte(iStr)) {
			count++
			p.Skip(len(iStr))
		} else {
			break
		}
	}

	body, err := p.readMandatoryArg()
	if err != nil {
		return nil, err
	}

	// Macro names starting with "\help" cannot be redefined.
	if !strings.HasPrefix(defName, "\\help") {
		p.macros[defName] = &defMacro{
			Count: count,
			Body:  body,
		}
	}
	return nil, nil
}

func parseHskip(p *Tokenizer, name string) (TokenList, error) {
	amount, err := p.readNumber()
	if err != nil {
		return nil, err
	}
	_, err = p.skipWhiteSpace()
	if err != nil {
		return nil, err
	}
	unit, err := p.readUnit()
	if err != nil {
		return nil, err
	}
	tok := &Token{
		Type: TokenMacro,
		Name: name,
		Args: []*Arg{
			{
				Value: TokenList{verbatim(amount + unit)},
			},
		},
	}
	return TokenList{tok}, nil
}

func parseVerb(p *Tokenizer, name string) (TokenList, error) {
	if !p.Next() {
		return nil, io.EOF
	}
	buf, err := p.Peek()
	if err != nil {
		return nil, err
	}
	sep := buf[0]
	p.Skip(1)
	body, err := p.readUntilChar(sep)
	if err != nil {
		return nil, err
	}

	tok := &Token{
		Type: TokenMacro,
		Name: name,
		Args: []*Arg{
			{
				Optional: false,
				Value:    TokenList{verbatim(body)},
			},
		},
	}
	return TokenList{tok}, nil
}

type letMacro string

func (m letMacro) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	p.Prepend([]byte(m), name+" -> "+string(m))
	return nil, nil
}

type defMacro struct {
	Count int
	Body  string
}

func (dm *defMacro) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	args := make([]string, dm.Count)
	for i := range args {
		arg, err := p.readMandatoryArg()
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	out := substituteMacroArgs(dm.Body, args)
	p.Prepend([]byte(out), name+" macro body")
	return nil, nil
}

// substituteMacroArgs replaces the parameters #1 to #9 in the body
// of a \def by the given arguments.  "##" stands for a single "#".
func substituteMacroArgs(body string, args []string) string {
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '#' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch next := body[i]; {
		case next == '#':
			b.WriteByte('#')
		case next >= '1' && next <= '9':
			if k := int(next - '1'); k < len(args) {
				b.WriteString(args[k])
			}
		default:
			b.WriteByte('#')
			b.WriteByte(next)
		}
	}
	return b.String()
}

// typedMacro describes the arguments of a macro, one letter per
// argument:
//
//	A  mandatory argument, tokenized
//	O  optional argument, tokenized
//	V  mandatory argument, kept verbatim
//	S  optional star
//	K  mandatory key=value list
//	P  optional key=value list
type typedMacro string

func (tm typedMacro) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	args, err := p.readTypedArgs(string(tm))
	if err != nil {
		return nil, err
	}
	return TokenList{&Token{Type: TokenMacro, Name: name, Args: args}}, nil
}

// declaringMacro describes a macro which defines new macros or
// environments.  The arguments are read as for typedMacro, then
// define registers the new names with the tokenizer.
type declaringMacro struct {
	argTypes string
	define   func(p *Tokenizer, args []*Arg)
}

func (dm declaringMacro) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	args, err := p.readTypedArgs(dm.argTypes)
	if err != nil {
		return nil, err
	}
	dm.define(p, args)
	return TokenList{&Token{Type: TokenMacro, Name: name, Args: args}}, nil
}

func (p *Tokenizer) readTypedArgs(argTypes string) ([]*Arg, error) {
	var args []*Arg
	for _, argType := range argTypes {
		var arg *Arg
		switch argType {
		case 'A', 'O':
			var text string
			var err error
			if argType == 'A' {
				text, err = p.readMandatoryArg()
			} else {
				text, err = p.readOptionalArg()
			}
			if err != nil {
				return nil, err
			}
			val, err := p.parseString(text)
			if err != nil {
				return nil, err
			}
			arg = &Arg{Optional: argType == 'O', Value: val}
		case 'V':
			text, err := p.readMandatoryArg()
			if err != nil {
				return nil, err
			}
			arg = &Arg{Value: TokenList{verbatim(text)}}
		case 'S':
			star, err := p.readOptionalStar()
			if err != nil {
				return nil, err
			}
			arg = &Arg{Optional: true, Value: star}
		case 'K', 'P':
			var text string
			var err error
			if argType == 'K' {
				text, err = p.readMandatoryArg()
			} else {
				text, err = p.readOptionalArg()
			}
			if err != nil {
				return nil, err
			}
			fields, err := p.parseKeyVal(text)
			if err != nil {
				return nil, err
			}
			arg = &Arg{Optional: argType == 'P', Fields: fields}
		default:
			panic("invalid argument type " + string(argType))
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *Tokenizer) readMacroName() (string, error) {
	if !p.Next() {
		return "", io.EOF
	}
	buf, err := p.Peek()
	if err != nil {
		return "", err
	}
	if buf[0] != '\\' {
		defer p.Skip(1)
		return string(buf[:1]), nil
	}
	if len(buf) < 2 {
		return "", io.EOF
	}
	if !isLetter(buf[1]) {
		defer p.Skip(2)
		return string(buf[:2]), nil
	}

	var i int
	for i = 1; i < len(buf); i++ {
		if !isLetter(buf[i]) {
			break
		}
	}
	if i >= scanner.PeekWindowSize {
		return "", p.MakeError("macro name too long")
	}
	name := string(buf[:i])
	p.Skip(i)

	_, err = p.skipWhiteSpace()
	return name, err
}

func (p *Tokenizer) readMandatoryArg() (string, error) {
	_, err := p.skipWhiteSpace()
	if err != nil {
		return "", err
	}

	if !p.Next() {
		return "", io.EOF
	}
	buf, err := p.Peek()
	if err != nil {
		return "", err
	}
	c := buf[0]
	p.Skip(1)
	if c != '{' {
		return string(c), nil
	}

	return p.readBalancedUntil('}')
}

func (p *Tokenizer) readOptionalArg() (string, error) {
	if !p.Next() {
		return "", nil
	}
	buf, err := p.Peek()
	if err != nil {
		return "", err
	}
	space := isSpace(buf[0])
	if space {
		_, err = p.skipWhiteSpace()
		if err != nil {
			return "", err
		}
	}

	if !p.Next() {
		return "", nil
	}
	buf, err = p.Peek()
	if err != nil {
		return "", err
	}
	if buf[0] != '[' {
		if space {
			p.Prepend([]byte{' '}, "space after macro")
		}
		return "", nil
	}

	p.Skip(1)
	return p.readBalancedUntil(']')
}

func (p *Tokenizer) readOptionalStar() (TokenList, error) {
	if !p.Next() {
		return nil, nil
	}
	buf, err := p.Peek()
	if err != nil {
		return nil, err
	}
	var star TokenList
	if buf[0] == '*' {
		star = TokenList{&Token{Type: TokenOther, Name: "*"}}
		p.Skip(1)
	}
	return star, nil
}

// readBalancedUntil reads text up to the given closing character.
// Braces inside the text must be balanced; the closing character
// only terminates the text at brace level 0.  The closing character
// is consumed but not included in the result.
func (p *Tokenizer) readBalancedUntil(end byte) (string, error) {
	var res []byte
	level := 0
	escaped := false
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return "", err
		}

		for pos, c := range buf {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == end && level == 0:
				res = append(res, buf[:pos]...)
				p.Skip(pos + 1)
				return string(res), nil
			case c == '{':
				level++
			case c == '}':
				level--
			}
		}
		res = append(res, buf...)
		p.Skip(len(buf))
	}
	return "", p.MakeError("missing '" + string(end) + "'")
}

// readUntilChar reads text up to the next occurrence of the given
// character, without any interpretation of the text.
func (p *Tokenizer) readUntilChar(end byte) (string, error) {
	var res []byte
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return "", err
		}
		if pos := bytes.IndexByte(buf, end); pos >= 0 {
			res = append(res, buf[:pos]...)
			p.Skip(pos + 1)
			return string(res), nil
		}
		res = append(res, buf...)
		p.Skip(len(buf))
	}
	return "", p.MakeError("missing '" + string(end) + "'")
}

func (p *Tokenizer) readNumber() (string, error) {
	if !p.Next() {
		return "", io.EOF
	}
	buf, err := p.Peek()
	if err != nil {
		return "", err
	}
	pos := 0
	if pos < len(buf) && (buf[pos] == '-' || buf[pos] == '+') {
		pos++
	}
	for pos < len(buf) && (isDigit(buf[pos]) || buf[pos] == '.') {
		pos++
	}
	if pos == 0 {
		return "", p.MakeError("number expected")
	}
	res := string(buf[:pos])
	p.Skip(pos)
	return res, nil
}

func (p *Tokenizer) readUnit() (string, error) {
	if !p.Next() {
		return "", io.EOF
	}
	buf, err := p.Peek()
	if err != nil {
		return "", err
	}
	if len(buf) < 2 || !isLetter(buf[0]) || !isLetter(buf[1]) {
		return "", p.MakeError("unit expected")
	}
	res := string(buf[:2])
	p.Skip(2)
	return res, nil
}

func (p *Tokenizer) readAllMacroArgs() ([]*Arg, error) {
	var args []*Arg
loop:
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return nil, err
		}

		switch buf[0] {
		case '{', '[':
			optional := buf[0] == '['
			end := byte('}')
			if optional {
				end = ']'
			}
			p.Skip(1)
			text, err := p.readBalancedUntil(end)
			if err != nil {
				return nil, err
			}
			val, err := p.parseString(text)
			if err != nil {
				return nil, err
			}
			args = append(args, &Arg{Optional: optional, Value: val})
		case '%':
			_, err := p.readComment()
			if err != nil {
				return nil, err
			}
		default:
			break loop
		}
	}

	return args, nil
}

func isMacro(tok *Token, name string, args ...string) bool {
	if tok.Type != TokenMacro {
		return false
	}
	if tok.Name != name {
		return false
	}
	if len(tok.Args) < len(args) {
		return false
	}
	for i, arg := range args {
		if tok.Args[i].String() != arg {
			return false
		}
	}
	return true
}
