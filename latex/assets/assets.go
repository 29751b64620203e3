// assets.go - copy images into a help set
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

// Package assets copies image files into a help set.  Files are
// identified by a hash of their contents, so that every image is
// stored only once, even if it is used under different names.
package assets

import (
	"encoding/base64"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/crypto/sha3"

	"github.com/seehuhn/texhelp/help"
)

// ErrUnsupportedType is returned for files which are not images in a
// format supported by web browsers.
var ErrUnsupportedType = errors.New("unsupported image type")

var supportedTypes = map[string]bool{
	"image/gif":     true,
	"image/jpeg":    true,
	"image/png":     true,
	"image/svg+xml": true,
}

// Sink is the part of a help.Writer used to store images.
type Sink interface {
	RegisterFile(baseName, mimeType string) *help.File
	CreateFile(file *help.File) (io.WriteCloser, error)
}

// Store keeps track of the images copied into a help set.
type Store struct {
	out     Sink
	entries map[string]*entry
	byName  map[string]string
	total   int64
}

type entry struct {
	Path string
	Size int64
}

// NewStore creates a new Store which writes images to out.
func NewStore(out Sink) *Store {
	return &Store{
		out:     out,
		entries: make(map[string]*entry),
		byName:  make(map[string]string),
	}
}

// Add copies the given image file into the help set, unless a file
// with the same contents has been added before.  The return value is
// the path of the image inside the help set.
func (s *Store) Add(fileName string) (string, error) {
	if hash, ok := s.byName[fileName]; ok {
		return s.entries[hash].Path, nil
	}

	body, err := os.ReadFile(fileName)
	if err != nil {
		return "", err
	}
	hash := hashData(body)
	s.byName[fileName] = hash
	if e, ok := s.entries[hash]; ok {
		return e.Path, nil
	}

	ext := filepath.Ext(fileName)
	mimeType := mime.TypeByExtension(strings.ToLower(ext))
	if mimeType == "" {
		mimeType = http.DetectContentType(body)
	}
	if k := strings.IndexByte(mimeType, ';'); k >= 0 {
		mimeType = strings.TrimSpace(mimeType[:k])
	}
	if !supportedTypes[mimeType] {
		delete(s.byName, fileName)
		return "", ErrUnsupportedType
	}

	baseName := strings.TrimSuffix(filepath.Base(fileName), ext)
	file := s.out.RegisterFile(baseName, mimeType)
	w, err := s.out.CreateFile(file)
	if err != nil {
		return "", err
	}
	_, err = w.Write(body)
	err2 := w.Close()
	if err == nil {
		err = err2
	}
	if err != nil {
		return "", err
	}

	e := &entry{
		Path: file.Path,
		Size: int64(len(body)),
	}
	s.entries[hash] = e
	s.total += e.Size
	log.Printf("image %s -> %s (%s)", fileName, file.Path, humanize.IBytes(uint64(e.Size)))
	return e.Path, nil
}

// Len returns the number of distinct images in the store.
func (s *Store) Len() int {
	return len(s.entries)
}

// Size returns the total size of all images, in human readable form.
func (s *Store) Size() string {
	return humanize.IBytes(uint64(s.total))
}

func hashData(data []byte) string {
	h := sha3.NewShake128()
	h.Write(data)
	buf := make([]byte, 15)
	h.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
