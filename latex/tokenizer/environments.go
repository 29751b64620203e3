// environments.go -
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
	"strings"
)

type environment interface {
	ReadArgs(p *Tokenizer, name string) (TokenList, error)
}

type simpleEnvClass struct{}

func (env simpleEnvClass) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	tok := &Token{
		Type: TokenMacro,
		Name: "\\begin",
		Args: []*Arg{
			{
				Optional: false,
				Value:    TokenList{verbatim(name)},
			},
		},
	}
	return TokenList{tok}, nil
}

var simpleEnv = simpleEnvClass{}

// typedEnv gives the argument types of an environment, in the format
// used by typedMacro.
type typedEnv string

func (env typedEnv) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	args, err := p.readTypedArgs(string(env))
	if err != nil {
		return nil, err
	}
	args = append([]*Arg{
		{
			Optional: false,
			Value:    TokenList{verbatim(name)},
		},
	}, args...)
	return TokenList{&Token{Type: TokenMacro, Name: "\\begin", Args: args}}, nil
}

// verbatimEnv captures the body of an environment without any
// interpretation.  The result is a single macro token, with the given
// name, holding the environment name and the body text.
type verbatimEnv string

func (env verbatimEnv) ReadArgs(p *Tokenizer, name string) (TokenList, error) {
	endTag := []byte("\\end{" + name + "}")

	var body []byte
	for {
		if !p.Next() {
			return nil, p.MakeError("missing " + string(endTag))
		}
		buf, err := p.Peek()
		if err != nil {
			return nil, err
		}
		if pos := bytes.Index(buf, endTag); pos >= 0 {
			body = append(body, buf[:pos]...)
			p.Skip(pos + len(endTag))
			break
		}

		// Keep enough bytes to detect an end tag crossing the
		// boundary of the lookahead window.
		n := len(buf) - len(endTag)
		if n <= 0 {
			return nil, p.MakeError("missing " + string(endTag))
		}
		body = append(body, buf[:n]...)
		p.Skip(n)
	}

	text := strings.TrimPrefix(string(body), "\n")
	tok := &Token{
		Type: TokenMacro,
		Name: string(env),
		Args: []*Arg{
			{Value: TokenList{verbatim(name)}},
			{Value: TokenList{verbatim(text)}},
		},
	}
	return TokenList{tok}, nil
}
