// scanner.go - read LaTeX input from a stack of files and buffers
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

// Package scanner provides byte-level access to the sources of a
// LaTeX document.  Inputs form a stack: the document file at the
// bottom, files loaded by \input and \include above it, and macro
// expansions on top.  Reading always continues with the topmost
// input.
package scanner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PeekWindowSize gives the minimum size of the lookahead buffer.
// Unless the end of input is reached, at least this many bytes
// are visible in the buffer returned by the .Peek() method.
const PeekWindowSize = 128

// readChunk is the number of bytes read from a file at a time.
const readChunk = 1024

// Scanner walks through a stack of input files and buffers.
type Scanner struct {
	// BaseDir is the base directory for include files.  Filenames
	// passed to the .Include() method are interpreted as being
	// relative to this directory.
	BaseDir string

	stack  []*input
	window []byte
	ready  bool
}

// input is one entry of the input stack.  Files are read on demand,
// buffers are complete from the start.
type input struct {
	name   string
	fd     io.ReadCloser
	data   []byte
	line   int
	err    error
	isFile bool
}

// Close closes all input files and discards all buffers used by the
// scanner.
func (scan *Scanner) Close() error {
	var res error
	for _, in := range scan.stack {
		if err := in.close(); res == nil {
			res = err
		}
	}
	scan.stack = nil
	return res
}

// Prepend pushes a buffer onto the input stack.  The buffer contents
// are read next, followed by all previous inputs.  The name is used
// in error messages; for macro expansions it is the macro name.
func (scan *Scanner) Prepend(data []byte, name string) {
	scan.push(&input{name: name, data: data})
}

// Include pushes the contents of a file onto the input stack.  The
// first file included sets BaseDir, if it is not yet set.
func (scan *Scanner) Include(fileName string) error {
	if scan.BaseDir != "" {
		fileName = filepath.Join(scan.BaseDir, fileName)
	}
	fd, err := os.Open(fileName)
	if err != nil {
		return err
	}
	scan.push(&input{
		name:   filepath.Base(fileName),
		fd:     fd,
		isFile: true,
	})

	if scan.BaseDir == "" {
		abs, err := filepath.Abs(fileName)
		if err != nil {
			return err
		}
		scan.BaseDir = filepath.Dir(abs)
	}
	return nil
}

func (scan *Scanner) push(in *input) {
	scan.stack = append(scan.stack, in)
}

// Next checks whether more input is available.  This method must be
// called before every call to the .Peek() method.
func (scan *Scanner) Next() bool {
	var window []byte
	for i := len(scan.stack) - 1; i >= 0 && len(window) < PeekWindowSize; i-- {
		in := scan.stack[i]
		if len(window)+len(in.data) < PeekWindowSize {
			in.fill()
		}
		window = append(window, in.data...)
		if in.err != nil {
			// nothing after a read error is visible
			break
		}
	}
	scan.window = window
	scan.dropFinished()
	scan.ready = true

	return len(window) > 0 || len(scan.stack) > 0
}

// dropFinished pops all exhausted inputs off the stack.  Inputs with
// a pending read error are kept, so that .Peek() can report them.
func (scan *Scanner) dropFinished() {
	n := len(scan.stack)
	for n > 0 {
		in := scan.stack[n-1]
		if len(in.data) > 0 || in.err != nil {
			break
		}
		n--
	}
	scan.stack = scan.stack[:n]
}

// Peek returns a buffer showing the first input bytes after the
// current input position.  Unless the end of file is reached, this
// buffer is at least PeekWindowSize bytes long.  The current input
// position is not changed by calls to .Peek().
//
// The contents of the returned buffer are only valid until the next
// call to the .Skip() method.  The .Next() method must be called to
// populate the look-ahead buffer before every call to .Peek().
func (scan *Scanner) Peek() ([]byte, error) {
	if !scan.ready {
		panic("scanner not ready, missing call to .Next()")
	}
	if len(scan.window) > 0 {
		return scan.window, nil
	}
	top := scan.stack[len(scan.stack)-1]
	return nil, scan.MakeError(top.err.Error())
}

// Skip advances the current position in the scanner inputs by n
// bytes.
func (scan *Scanner) Skip(n int) {
	if n < 0 {
		panic("invalid skip amount")
	}
	scan.ready = false
	for i := len(scan.stack) - 1; n > 0; i-- {
		k := scan.stack[i].advance(n)
		scan.window = scan.window[k:]
		n -= k
	}
}

// Location returns the current input position, in the form
// "name:line".  The innermost file is used, since the names of
// in-memory buffers describe macro expansions rather than places in
// the document.  Without a file, the innermost buffer is used.
func (scan *Scanner) Location() string {
	if len(scan.stack) == 0 {
		return ""
	}
	for i := len(scan.stack) - 1; i >= 0; i-- {
		if in := scan.stack[i]; in.isFile {
			return in.position()
		}
	}
	return scan.stack[len(scan.stack)-1].position()
}

// MakeError returns an error object which includes the given message
// together with the chain of inputs leading to the current position.
func (scan *Scanner) MakeError(message string) *ParseError {
	err := &ParseError{Message: message}
	for i := len(scan.stack) - 1; i >= 0; i-- {
		in := scan.stack[i]
		err.Frames = append(err.Frames, Frame{
			Name:    in.name,
			Line:    in.line + 1,
			Context: in.context(),
		})
	}
	return err
}

// fill reads the next chunk of a file input.  At the end of the file,
// or on error, the file is closed.
func (in *input) fill() {
	if in.fd == nil || in.err != nil {
		return
	}
	buf := make([]byte, readChunk)
	n, err := in.fd.Read(buf)
	in.data = append(in.data, buf[:n]...)
	if err == nil {
		return
	}
	if err != io.EOF {
		in.err = err
	}
	if e2 := in.close(); in.err == nil {
		in.err = e2
	}
}

func (in *input) close() error {
	if in.fd == nil {
		return nil
	}
	err := in.fd.Close()
	in.fd = nil
	return err
}

// advance consumes up to n bytes of buffered data and returns the
// number of bytes consumed.
func (in *input) advance(n int) int {
	if n > len(in.data) {
		n = len(in.data)
	}
	in.line += bytes.Count(in.data[:n], []byte{'\n'})
	in.data = in.data[n:]
	return n
}

func (in *input) position() string {
	return in.name + ":" + strconv.Itoa(in.line+1)
}

// context returns the start of the unread data, for error messages.
func (in *input) context() string {
	if len(in.data) > 20 {
		return string(in.data[:17]) + "..."
	}
	return string(in.data)
}

// Frame is one entry in the chain of inputs of a ParseError.
type Frame struct {
	Name    string
	Line    int
	Context string
}

// ParseError describes a problem found while reading the input.
// Frames lists the inputs leading to the problem, innermost first.
type ParseError struct {
	Message string
	Frames  []Frame
}

func (err *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(err.Message)
	for i, frame := range err.Frames {
		if i > 0 {
			b.WriteString(", included from")
		}
		fmt.Fprintf(&b, "\n    %s, line %d", frame.Name, frame.Line)
		if frame.Context != "" {
			fmt.Fprintf(&b, ", before %q", frame.Context)
		}
	}
	return b.String()
}
