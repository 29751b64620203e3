// tokenizer.go -
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
	"log"

	"github.com/seehuhn/texhelp/latex/scanner"
)

// A Tokenizer can be used to split a LaTeX file into syntactic units.
// User-defined macros are expanded in the process.
type Tokenizer struct {
	scanner.Scanner

	macros       map[string]macro
	environments map[string]environment
	loaded       map[string]bool

	// outerLoc, if set, is reported as the location of all macros.
	outerLoc string
}

// NewTokenizer creates and initialises a new Tokenizer.
func NewTokenizer() *Tokenizer {
	p := &Tokenizer{
		macros:       make(map[string]macro),
		environments: make(map[string]environment),
		loaded:       make(map[string]bool),
	}
	p.addBuiltinMacros()
	return p
}

// child returns a tokenizer for argument text, which shares the macro
// and environment definitions with p.
func (p *Tokenizer) child() *Tokenizer {
	loc := p.outerLoc
	if loc == "" {
		loc = p.Location()
	}
	return &Tokenizer{
		Scanner: scanner.Scanner{
			BaseDir: p.BaseDir,
		},
		macros:       p.macros,
		environments: p.environments,
		loaded:       p.loaded,
		outerLoc:     loc,
	}
}

var multi = map[string]bool{
	"$$":  true,
	"``":  true,
	"''":  true,
	"--":  true,
	"---": true,
}

// ParseTex splits the Tokenizer's input into tokens and writes these
// tokens into the given channel.
func (p *Tokenizer) ParseTex(res chan<- *Token) error {
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return err
		}

		switch {
		case buf[0] == '\\':
			loc := p.outerLoc
			if loc == "" {
				loc = p.Location()
			}
			name, err := p.readMacroName()
			if err != nil {
				return err
			}

			var tokens TokenList
			if m := p.macros[name]; m != nil {
				tokens, err = m.ReadArgs(p, name)
			} else if name == "\\begin" {
				tokens, err = p.readBegin(name)
			} else {
				log.Println("unknown macro", name)
				var args []*Arg
				args, err = p.readAllMacroArgs()
				tokens = TokenList{&Token{Type: TokenMacro, Name: name, Args: args}}
			}
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				if tok.Type == TokenMacro && tok.Loc == "" {
					tok.Loc = loc
				}
				res <- tok
			}

		case buf[0] == '%':
			comment, err := p.readComment()
			if err != nil {
				return err
			}
			res <- &Token{Type: TokenComment, Name: comment}

		case bytes.HasPrefix(buf, []byte("\n\n")):
			err := p.skipAllWhiteSpace()
			if err != nil {
				return err
			}
			res <- &Token{Type: TokenEmptyLine}

		case isSpace(buf[0]):
			emptyLine, err := p.skipWhiteSpace()
			if err != nil {
				return err
			}
			if !emptyLine {
				res <- &Token{Type: TokenSpace}
			}

		case isWordByte(buf[0]):
			word, err := p.readWord()
			if err != nil {
				return err
			}
			res <- &Token{Type: TokenWord, Name: word}

		default:
			n := 1
			for k := 3; k > 1; k-- {
				if len(buf) >= k && multi[string(buf[:k])] {
					n = k
					break
				}
			}
			name := string(buf[:n])
			p.Skip(n)
			res <- &Token{Type: TokenOther, Name: name}
		}
	}
	return nil
}

func (p *Tokenizer) readBegin(name string) (TokenList, error) {
	envName, err := p.readMandatoryArg()
	if err != nil {
		return nil, err
	}
	if env := p.environments[envName]; env != nil {
		return env.ReadArgs(p, envName)
	}

	log.Println("unknown environment", envName)
	args, err := p.readAllMacroArgs()
	if err != nil {
		return nil, err
	}
	args = append([]*Arg{
		{
			Optional: false,
			Value:    TokenList{verbatim(envName)},
		},
	}, args...)
	return TokenList{{Type: TokenMacro, Name: name, Args: args}}, nil
}

func (p *Tokenizer) skipWhiteSpace() (bool, error) {
	nlSeen := 0
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return false, err
		}

		pos := 0
		for pos < len(buf) && isSpace(buf[pos]) {
			if buf[pos] == '\n' {
				nlSeen++
			}
			pos++
		}
		p.Skip(pos)
		if pos < len(buf) {
			break
		}
	}

	emptyLine := false
	if nlSeen > 1 {
		p.Prepend([]byte("\n\n"), "<end of paragraph>")
		emptyLine = true
	}
	return emptyLine, nil
}

func (p *Tokenizer) skipAllWhiteSpace() error {
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return err
		}

		pos := 0
		for pos < len(buf) && isSpace(buf[pos]) {
			pos++
		}
		p.Skip(pos)
		if pos < len(buf) {
			break
		}
	}
	return nil
}

func (p *Tokenizer) readWord() (string, error) {
	var res []byte
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return "", err
		}

		pos := 0
		for pos < len(buf) && isWordByte(buf[pos]) {
			pos++
		}
		res = append(res, buf[:pos]...)
		p.Skip(pos)

		if pos < len(buf) {
			break
		}
	}
	return string(res), nil
}

// parseString tokenizes the text of a macro argument, using the
// macro definitions currently in effect.
func (p *Tokenizer) parseString(text string) (TokenList, error) {
	c := make(chan *Token, 64)
	errChan := make(chan error, 1)
	go func() {
		q := p.child()
		q.Prepend([]byte(text), "argument")
		errChan <- q.ParseTex(c)
		close(c)
	}()

	var res TokenList
	for tok := range c {
		res = append(res, tok)
	}
	return res, <-errChan
}

// ParseString tokenizes the given text with a fresh tokenizer, after
// loading the given LaTeX packages.
func ParseString(text string, packages ...string) (TokenList, error) {
	p := NewTokenizer()
	for _, pkg := range packages {
		p.loadPackage(pkg)
	}
	return p.parseString(text)
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isWordByte reports whether c can be part of a word.  All bytes of
// multi-byte UTF-8 sequences count as letters.
func isWordByte(c byte) bool {
	return isLetter(c) || c >= 0x80
}
