// assets_test.go -
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

package assets

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/seehuhn/texhelp/help"
)

type memFile struct {
	bytes.Buffer
	sink *memSink
	path string
}

func (f *memFile) Close() error {
	f.sink.files[f.path] = f.Bytes()
	return nil
}

type memSink struct {
	files map[string][]byte
}

func (s *memSink) RegisterFile(baseName, mimeType string) *help.File {
	ext := "." + strings.TrimPrefix(mimeType, "image/")
	return &help.File{Path: "img/" + baseName + ext, MediaType: mimeType}
}

func (s *memSink) CreateFile(file *help.File) (io.WriteCloser, error) {
	return &memFile{sink: s, path: file.Path}, nil
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	pngData := []byte("\x89PNG\r\n\x1a\n0123456789")
	for _, name := range []string{"a.png", "b.png"} {
		err := os.WriteFile(filepath.Join(dir, name), pngData, 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	err := os.WriteFile(filepath.Join(dir, "c.txt"), []byte("hello"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	sink := &memSink{files: make(map[string][]byte)}
	s := NewStore(sink)

	p1, err := s.Add(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	if p1 != "img/a.png" {
		t.Errorf("wrong path %q", p1)
	}
	p2, err := s.Add(filepath.Join(dir, "b.png"))
	if err != nil {
		t.Fatal(err)
	}
	if p2 != p1 {
		t.Errorf("identical images stored twice: %q %q", p1, p2)
	}
	if s.Len() != 1 || len(sink.files) != 1 {
		t.Errorf("wrong number of images: %d %d", s.Len(), len(sink.files))
	}
	if !bytes.Equal(sink.files[p1], pngData) {
		t.Error("wrong image data")
	}

	_, err = s.Add(filepath.Join(dir, "c.txt"))
	if err != ErrUnsupportedType {
		t.Errorf("wrong error %v", err)
	}
	_, err = s.Add(filepath.Join(dir, "missing.png"))
	if !os.IsNotExist(err) {
		t.Errorf("wrong error %v", err)
	}
}

func TestStoreSize(t *testing.T) {
	dir := t.TempDir()
	sink := &memSink{files: make(map[string][]byte)}
	s := NewStore(sink)
	if got := s.Size(); got != "0 B" {
		t.Errorf("empty store has size %q", got)
	}

	header := []byte("\x89PNG\r\n\x1a\n")
	for i, size := range []int{1024, 2048} {
		data := bytes.Repeat([]byte{byte(i)}, size)
		copy(data, header)
		name := filepath.Join(dir, strconv.Itoa(i)+".png")
		err := os.WriteFile(name, data, 0644)
		if err != nil {
			t.Fatal(err)
		}
		_, err = s.Add(name)
		if err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Size(); got != "3.0 KiB" {
		t.Errorf("wrong total size %q", got)
	}
}
