// writer.go - write HTML help sets
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

// Package help writes HTML help sets.
//
// A help set consists of HTML pages, the images and style sheets used
// by these pages, and three XML files: "navigation.xml" describes the
// tree of sections, "index.xml" lists all link targets, and
// "search.xml" holds the full-text search index.
package help

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/seehuhn/texhelp/search"
)

const (
	baseNameSpaceURL = "http://texhelp.seehuhn.de/"

	cssName      = "help"
	titleName    = "title"
	navPath      = "navigation.xml"
	indexPath    = "index.xml"
	searchPath   = "search.xml"
	searchDBPath = "search.db"

	pageMimeType = "text/html"
)

// Errors returned by the help set writers.
var (
	ErrClosed            = errors.New("attempt to write to a closed help set")
	ErrWrongSectionLevel = errors.New("wrong section level")
)

// File describes one file of the help set.
type File struct {
	ID        string
	MediaType string
	Path      string
}

// Section describes the start of a new section.
type Section struct {
	Level int

	// Number is the formatted section number, or the empty string
	// for unnumbered sections.
	Number string

	// Title is the section title in HTML, Text is the same title as
	// plain text.
	Title string
	Text  string

	// ID is the anchor ID of the section heading.  If this is empty,
	// an ID is generated.
	ID string

	// NewPage indicates that the section starts a new page.
	NewPage bool
}

// Heading returns the HTML heading level used for the section title.
func (s *Section) Heading() int {
	if s.Level >= 5 {
		return 6
	}
	return s.Level + 1
}

// Target describes a place in the help set which can be linked to.
type Target struct {
	Key    string
	Page   string
	Anchor string
	Type   string
	Title  string
}

// Writer is the interface implemented by help set writers.
type Writer interface {
	AddTitle(title string, authors []string) error
	AddSection(sec *Section) error
	AddTarget(t *Target)
	AddText(context, text string)

	RegisterFile(baseName, mimeType string) *File
	CreateFile(file *File) (io.WriteCloser, error)
	WriteString(s string) error
	Page() string

	Flush() error
}

// Settings holds optional parameters for a help set.
type Settings struct {
	// Language is the language of the text, used for the search
	// index.  The default is English.
	Language language.Tag

	// StopWords are ignored by the search index, in addition to the
	// built-in stop-words for the language.
	StopWords []string

	// SearchDB, if set, requests an SQLite copy of the search index.
	SearchDB bool
}

type page struct {
	file   *File
	buf    bytes.Buffer
	levels []int
}

type book struct {
	UUID         uuid.UUID
	LastModified string
	Language     string

	Title     string
	Authors   []string
	TitlePath string

	Files   map[string]*File
	Pages   []*File
	Nav     []*NavEntry
	Targets []*Target
	CSSPath string

	open     bool
	nextID   int
	pageNo   int
	current  *page
	index    *search.Index
	searchDB bool

	driver driver
}

// NewDirWriter returns a Writer which stores the help set in the
// directory baseDir.
func NewDirWriter(baseDir string, identifier string, settings *Settings) (
	Writer, error) {
	driver := &dirDriver{
		BaseDir: baseDir,
	}
	return newWriter(driver, identifier, settings)
}

// NewZipWriter returns a Writer which stores the help set as a zip
// archive.
func NewZipWriter(out io.Writer, identifier string, settings *Settings) (
	Writer, error) {
	return newWriter(newZipDriver(out), identifier, settings)
}

func newWriter(driver driver, identifier string, settings *Settings) (
	*book, error) {
	nameSpace := uuid.NewSHA1(uuid.NameSpaceURL, []byte(baseNameSpaceURL))

	lang := language.English
	if settings != nil && settings.Language != language.Und {
		lang = settings.Language
	}

	w := &book{
		UUID:         uuid.NewSHA1(nameSpace, []byte(identifier)),
		LastModified: time.Now().UTC().Format(time.RFC3339),
		Language:     lang.String(),

		open:  true,
		Files: make(map[string]*File),
		index: search.NewIndex(lang),

		driver: driver,
	}
	if settings != nil {
		w.index.AddStopWords(settings.StopWords...)
		w.searchDB = settings.SearchDB
	}

	css := w.RegisterFile(cssName, "text/css")
	w.CSSPath = css.Path

	return w, nil
}

// PageName returns the path of the n-th page of a help set.  Page 0
// holds any material before the first section.
func PageName(n int) string {
	if n == 0 {
		return "index.html"
	}
	return "node" + strconv.Itoa(n) + ".html"
}

func (w *book) Flush() error {
	if !w.open {
		return nil
	}

	err := w.closePage()
	if err != nil {
		return err
	}

	css := w.Files[w.CSSPath]
	err = w.createFromTemplate(css.Path, "help.css", nil)
	if err != nil {
		return err
	}

	err = w.writeXMLFile(navPath, w.navigation())
	if err != nil {
		return err
	}
	err = w.writeXMLFile(indexPath, w.targetIndex())
	if err != nil {
		return err
	}
	out, err := w.driver.Create(searchPath)
	if err != nil {
		return err
	}
	err = mergeErrors(w.index.WriteXML(out, w.UUID.String()), out.Close())
	if err != nil {
		return err
	}
	if w.searchDB {
		err = w.writeSearchDB()
		if err != nil {
			return err
		}
	}

	w.open = false
	return w.driver.Close()
}

// writeSearchDB stores an SQLite copy of the search index.  The
// database is built in a temporary file first, since the zip driver
// can only store complete files.
func (w *book) writeSearchDB() error {
	tmpDir, err := os.MkdirTemp("", "texhelp")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	tmpName := filepath.Join(tmpDir, searchDBPath)
	err = w.index.SaveSQLite(context.Background(), tmpName)
	if err != nil {
		return err
	}

	in, err := os.Open(tmpName)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := w.driver.Create(searchDBPath)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	return mergeErrors(err, out.Close())
}

func (w *book) RegisterFile(baseName, mimeType string) *File {
	dir := ""
	ext := ""
	switch mimeType {
	case pageMimeType:
		ext = ".html"
	case "text/css":
		ext = ".css"
		dir = "css/"
	case "image/png":
		ext = ".png"
		dir = "img/"
	case "image/jpeg":
		ext = ".jpg"
		dir = "img/"
	case "image/gif":
		ext = ".gif"
		dir = "img/"
	case "image/svg+xml":
		ext = ".svg"
		dir = "img/"
	default:
		panic("unknown mime type " + mimeType)
	}
	return w.registerPath(w.uniqueName(dir+baseName, ext), mimeType)
}

func (w *book) registerPath(path, mimeType string) *File {
	file := &File{
		ID:        "f" + strconv.Itoa(w.nextID),
		MediaType: mimeType,
		Path:      path,
	}
	w.nextID++
	w.Files[file.Path] = file
	if mimeType == pageMimeType {
		w.Pages = append(w.Pages, file)
	}
	return file
}

type fileWriter struct {
	bytes.Buffer
	path   string
	driver driver
}

func (fw *fileWriter) Close() error {
	out, err := fw.driver.Create(fw.path)
	if err != nil {
		return err
	}
	_, err = fw.WriteTo(out)
	return mergeErrors(err, out.Close())
}

// CreateFile returns a writer for the contents of the given file.  The
// file is stored when the writer is closed.  Writing to other files,
// including the current page, is possible while the writer is open.
func (w *book) CreateFile(file *File) (io.WriteCloser, error) {
	if !w.open {
		return nil, ErrClosed
	}
	return &fileWriter{path: file.Path, driver: w.driver}, nil
}

func (w *book) AddTitle(title string, authors []string) error {
	if !w.open {
		return ErrClosed
	}

	w.Title = title
	w.Authors = authors
	file := w.RegisterFile(titleName, pageMimeType)
	w.TitlePath = file.Path
	return w.createFromTemplate(file.Path, "title.html",
		map[string]interface{}{
			"Title": title,
		})
}

func (w *book) openPage(title string) error {
	file := w.registerPath(PageName(w.pageNo), pageMimeType)
	w.current = &page{file: file}
	return w.execTemplate(&w.current.buf, "page-head.html",
		map[string]interface{}{
			"Title": title,
		})
}

func (w *book) closeSections(level int) error {
	p := w.current
	for len(p.levels) > 0 && p.levels[len(p.levels)-1] >= level {
		err := w.execTemplate(&p.buf, "section-tail.html", nil)
		if err != nil {
			return err
		}
		p.levels = p.levels[:len(p.levels)-1]
	}
	return nil
}

func (w *book) closePage() error {
	if w.current == nil {
		return nil
	}
	err := w.closeSections(0)
	if err != nil {
		return err
	}
	err = w.execTemplate(&w.current.buf, "page-tail.html", nil)
	if err != nil {
		return err
	}

	out, err := w.driver.Create(w.current.file.Path)
	if err != nil {
		return err
	}
	_, err = w.current.buf.WriteTo(out)
	w.current = nil
	return mergeErrors(err, out.Close())
}

func (w *book) AddSection(sec *Section) error {
	if !w.open {
		return ErrClosed
	}
	if sec.Level <= 0 {
		return ErrWrongSectionLevel
	}

	if sec.NewPage {
		err := w.closePage()
		if err != nil {
			return err
		}
		w.pageNo++
	}
	if w.current == nil {
		err := w.openPage(sec.Text)
		if err != nil {
			return err
		}
	} else {
		err := w.closeSections(sec.Level)
		if err != nil {
			return err
		}
	}

	if sec.ID == "" {
		sec.ID = "sec-" + strconv.Itoa(len(w.Nav)+1)
	}
	w.Nav = append(w.Nav, &NavEntry{
		Level:  sec.Level,
		Number: sec.Number,
		Title:  sec.Text,
		Path:   w.current.file.Path,
		ID:     sec.ID,
	})

	w.current.levels = append(w.current.levels, sec.Level)
	return w.execTemplate(&w.current.buf, "section-head.html",
		sec)
}

func (w *book) AddTarget(t *Target) {
	if t.Page == "" {
		t.Page = w.Page()
	}
	w.Targets = append(w.Targets, t)
}

func (w *book) AddText(context, text string) {
	w.index.Add(context, text)
}

// WriteString appends HTML to the current page.  If no page is open
// yet, the front page is started.
func (w *book) WriteString(s string) error {
	if !w.open {
		return ErrClosed
	}
	if w.current == nil {
		err := w.openPage(w.Title)
		if err != nil {
			return err
		}
	}
	_, err := w.current.buf.WriteString(s)
	return err
}

// Page returns the path of the current page, or the empty string if
// no page is open.
func (w *book) Page() string {
	if w.current == nil {
		return ""
	}
	return w.current.file.Path
}

func (w *book) uniqueName(name, ext string) string {
	tryName := name + ext
	unique := 2
	for {
		_, clash := w.Files[tryName]
		if !clash {
			break
		}
		tryName = name + strconv.Itoa(unique) + ext
		unique++
	}
	return tryName
}

func mergeErrors(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
