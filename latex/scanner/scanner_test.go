// scanner_test.go -
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

package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScannerSimple(t *testing.T) {
	scan := &Scanner{}
	target := "testing"
	scan.Prepend([]byte(target[4:]), "end")
	scan.Prepend([]byte(target[:4]), "beginning")

	for len(target) > 0 {
		hasData := scan.Next()
		if !hasData {
			t.Fatal("unexpected end of data")
		}
		buf, err := scan.Peek()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if string(buf) != target {
			t.Fatalf("expected %q, got %q", target, string(buf))
		}
		scan.Skip(1)
		target = target[1:]
	}

	hasData := scan.Next()
	if hasData {
		t.Fatal("unexpected data")
	}
}

func TestScannerError(t *testing.T) {
	scan := &Scanner{}
	scan.Prepend([]byte("\nline after include\nend\n"), "level1")
	scan.Prepend([]byte("line 1\nline 2\nlin"), "level2")
	scan.stack[1].err = errors.New("something bad happened")
	scan.Prepend([]byte("some\nincluded\nstuff\n"), "level3")

	for scan.Next() {
		buf, err := scan.Peek()
		if err != nil {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("wrong error %q", err)
			}
			var names []string
			for _, frame := range pe.Frames {
				names = append(names, frame.Name)
			}
			if d := cmp.Diff([]string{"level2", "level1"}, names); d != "" {
				t.Errorf("wrong input chain (-want +got):\n%s", d)
			}
			if pe.Frames[0].Line != 3 {
				t.Errorf("wrong error location in %q", err)
			}
			return
		}
		scan.Skip(len(buf))
	}
	t.Fatal("error not reported")
}

func TestScannerLocation(t *testing.T) {
	scan := &Scanner{}
	scan.Prepend([]byte("one\ntwo\nthree"), "buffer")
	scan.stack[0].isFile = true
	scan.Prepend([]byte("expansion"), "\\macro body")

	if loc := scan.Location(); loc != "buffer:1" {
		t.Errorf("wrong location %q", loc)
	}

	for i := 0; i < len("expansion")+len("one\ntwo\n"); i++ {
		if !scan.Next() {
			t.Fatal("unexpected end of data")
		}
		scan.Skip(1)
	}
	if loc := scan.Location(); loc != "buffer:3" {
		t.Errorf("wrong location %q", loc)
	}
}

func TestLocationBuffers(t *testing.T) {
	scan := &Scanner{}
	if loc := scan.Location(); loc != "" {
		t.Errorf("location %q without input", loc)
	}

	scan.Prepend([]byte("a\nb\n"), "outer")
	scan.Prepend([]byte("x\ny"), "inner")
	if loc := scan.Location(); loc != "inner:1" {
		t.Errorf("wrong location %q", loc)
	}
	for _, c := range "x\nya\n" {
		if !scan.Next() {
			t.Fatal("unexpected end of data")
		}
		scan.Skip(1)
		if c == 'y' {
			// the empty buffer stays on the stack until .Next() is called
			if loc := scan.Location(); loc != "inner:2" {
				t.Errorf("wrong location %q", loc)
			}
		}
	}
	if !scan.Next() {
		t.Fatal("unexpected end of data")
	}
	if loc := scan.Location(); loc != "outer:2" {
		t.Errorf("wrong location %q", loc)
	}
}

func TestLocationFiles(t *testing.T) {
	dir := t.TempDir()
	body := strings.Repeat("line\n", 300)
	err := os.WriteFile(filepath.Join(dir, "chapter.tex"), []byte(body), 0644)
	if err != nil {
		t.Fatal(err)
	}

	scan := &Scanner{BaseDir: dir}
	defer scan.Close()
	scan.Prepend([]byte("after"), "main.tex")
	err = scan.Include("chapter.tex")
	if err != nil {
		t.Fatal(err)
	}
	scan.Prepend([]byte("\\cmd"), "\\macro")

	if loc := scan.Location(); loc != "chapter.tex:1" {
		t.Errorf("wrong location %q", loc)
	}

	if !scan.Next() {
		t.Fatal("unexpected end of data")
	}
	scan.Skip(len("\\cmd"))

	// read past the first chunk of the file
	for i := 0; i < 200; i++ {
		if !scan.Next() {
			t.Fatal("unexpected end of data")
		}
		buf, err := scan.Peek()
		if err != nil {
			t.Fatal(err)
		}
		if len(buf) < PeekWindowSize {
			t.Fatalf("short look-ahead window: %d bytes", len(buf))
		}
		scan.Skip(len("line\n"))
	}
	if loc := scan.Location(); loc != "chapter.tex:201" {
		t.Errorf("wrong location %q", loc)
	}

	var rest []byte
	for scan.Next() {
		buf, err := scan.Peek()
		if err != nil {
			t.Fatal(err)
		}
		rest = append(rest, buf[0])
		scan.Skip(1)
	}
	if !strings.HasSuffix(string(rest), "line\nafter") {
		t.Errorf("wrong input order, ends with %q", rest[len(rest)-10:])
	}
}
