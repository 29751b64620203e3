// driver.go - storage back-ends for help sets
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

package help

import (
	"archive/zip"
	"compress/flate"
	"io"
	"os"
	"path/filepath"
	"time"
)

// A driver stores the files of a help set.  Files are always written
// one at a time: the writer returned by Create is closed before the
// next call to Create.  Paths use forward slashes.
type driver interface {
	Create(path string) (io.WriteCloser, error)
	Close() error
}

// zipDriver stores a help set as a single zip archive.  All entries
// get the same modification time, the time the archive was started.
type zipDriver struct {
	zw    *zip.Writer
	mtime time.Time
}

func newZipDriver(out io.Writer) *zipDriver {
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})
	return &zipDriver{zw: zw, mtime: time.Now()}
}

func (d *zipDriver) Create(path string) (io.WriteCloser, error) {
	w, err := d.zw.CreateHeader(&zip.FileHeader{
		Name:     path,
		Method:   zip.Deflate,
		Modified: d.mtime,
	})
	if err != nil {
		return nil, err
	}
	// the zip.Writer finishes an entry when the next one starts
	return entryWriter{w}, nil
}

func (d *zipDriver) Close() error {
	return d.zw.Close()
}

type entryWriter struct {
	io.Writer
}

func (entryWriter) Close() error { return nil }

// dirDriver stores a help set as a tree of files below BaseDir.
type dirDriver struct {
	BaseDir string
}

func (d *dirDriver) Create(path string) (io.WriteCloser, error) {
	name := filepath.Join(d.BaseDir, filepath.FromSlash(path))
	err := os.MkdirAll(filepath.Dir(name), 0755)
	if err != nil {
		return nil, err
	}
	return os.Create(name)
}

func (d *dirDriver) Close() error {
	return nil
}
