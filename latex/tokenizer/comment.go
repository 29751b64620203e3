// comment.go - read LaTeX comments
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
	"unicode"
)

// readComment reads a block of comment lines, starting at a '%'
// character.  As in TeX, a comment swallows the end of its line and
// the indentation of the following line.  Consecutive comment lines
// are joined into one comment, with the '%' signs and trailing white
// space removed.
//
// If the comment block is followed by a blank line, the line break
// swallowed by the last comment is put back, so that the blank line
// still ends the paragraph.
func (p *Tokenizer) readComment() (string, error) {
	var lines []string
	for {
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		line = strings.TrimPrefix(line, "%")
		lines = append(lines, strings.TrimRightFunc(line, unicode.IsSpace))

		err = p.skipIndent()
		if err != nil {
			return "", err
		}
		if !p.Next() {
			break
		}
		buf, err := p.Peek()
		if err != nil {
			return "", err
		}
		if buf[0] == '\n' {
			p.Prepend([]byte{'\n'}, "<end of paragraph>")
			break
		}
		if buf[0] != '%' {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

// readLine reads the rest of the current input line, including the
// terminating newline (if any).
func (p *Tokenizer) readLine() (string, error) {
	var line []byte
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return "", err
		}
		if k := bytes.IndexByte(buf, '\n'); k >= 0 {
			line = append(line, buf[:k+1]...)
			p.Skip(k + 1)
			break
		}
		line = append(line, buf...)
		p.Skip(len(buf))
	}
	return string(line), nil
}

// skipIndent skips spaces and tabs at the start of a line.
func (p *Tokenizer) skipIndent() error {
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return err
		}
		pos := 0
		for pos < len(buf) && (buf[pos] == ' ' || buf[pos] == '\t' || buf[pos] == '\r') {
			pos++
		}
		p.Skip(pos)
		if pos < len(buf) {
			break
		}
	}
	return nil
}
