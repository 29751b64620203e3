// tokenize.go - store the token stream between the conversion passes
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

import (
	"encoding/gob"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/seehuhn/texhelp/latex/tokenizer"
)

// Tokenize splits the input file into tokens and stores these in a
// temporary file.  Both conversion passes read the tokens from there,
// so that macro expansion and \input files are handled only once.
func (conv *converter) Tokenize(inputFileName string) error {
	toks := tokenizer.NewTokenizer()
	defer toks.Close()
	err := toks.Include(inputFileName)
	if err != nil {
		return err
	}
	return conv.runTokenizer(toks)
}

func (conv *converter) runTokenizer(toks *tokenizer.Tokenizer) error {
	conv.TokenFileName = filepath.Join(conv.WorkDir, "tokens.dat")
	out, err := os.Create(conv.TokenFileName)
	if err != nil {
		return err
	}
	n, err := writeTokens(out, toks)
	if e2 := out.Close(); err == nil {
		err = e2
	}
	if err != nil {
		return err
	}

	// \input files are found relative to the main document
	conv.SourceDir = toks.BaseDir
	log.Printf("%d tokens", n)
	return nil
}

// writeTokens runs the tokenizer and writes the gob-encoded tokens to
// w.  The return value is the number of tokens written.
func writeTokens(w io.Writer, toks *tokenizer.Tokenizer) (int, error) {
	c := make(chan *tokenizer.Token, 64)
	parseErr := make(chan error, 1)
	go func() {
		parseErr <- toks.ParseTex(c)
		close(c)
	}()

	enc := gob.NewEncoder(w)
	n := 0
	var err error
	for tok := range c {
		// keep draining c, so that the tokenizer can finish
		if err != nil {
			continue
		}
		err = enc.Encode(tok)
		n++
	}
	if e2 := <-parseErr; e2 != nil {
		return n, e2
	}
	return n, err
}

// readTokens calls fn for every token in the token file, in order.
// The first argument of fn is the position of the token in the file;
// the two passes use this position to refer to the same token.
func (conv *converter) readTokens(fn func(pos int, token *tokenizer.Token) error) error {
	fd, err := os.Open(conv.TokenFileName)
	if err != nil {
		return err
	}
	defer fd.Close()

	dec := gob.NewDecoder(fd)
	pos := 0
	for {
		var token *tokenizer.Token
		err := dec.Decode(&token)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		err = fn(pos, token)
		if err != nil {
			return err
		}
		pos++
	}
}
