// convert.go -
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
	"log"
	"os"

	"golang.org/x/text/language"

	"github.com/seehuhn/texhelp/help"
	"github.com/seehuhn/texhelp/latex/assets"
	"github.com/seehuhn/texhelp/latex/tokenizer"
)

// Options controls details of the conversion.
type Options struct {
	// SplitLevel is the deepest section level which starts a new
	// page.  The default is 1, i.e. one page per chapter in books and
	// one page per section in articles.
	SplitLevel int

	// IconDir is the directory where the images for \icon are found.
	// Relative paths are interpreted relative to the directory of
	// the input file.
	IconDir string

	// Language is used to sort the glossary and to format error
	// messages.  The default is English.
	Language language.Tag
}

type converter struct {
	Book help.Writer
	Opts Options

	SourceDir     string
	WorkDir       string
	TokenFileName string

	Assets     *assets.Store
	Labels     []*xRef
	Sections   []*tocEntry
	IndexTerms []*indexTerm

	Section  sectionNumber
	Page     int
	Levels   map[string]int
	Counters map[string]*counterInfo
	Macros   map[string]macro
	Envs     map[string]*environment
	EnvStack []string

	Glossary map[string]*glsEntry
	GlsPage  string
	Messages map[string]tokenizer.TokenList

	PkgState map[string]string
	Packages map[string]bool

	Title, Author tokenizer.TokenList

	// Loc is the source location of the macro being processed.
	Loc string

	indexCount int
	detached   int
	unknown    map[string]bool
}

func newConverter(book help.Writer, opts *Options) (*converter, error) {
	workDir, err := os.MkdirTemp("", "texhelp")
	if err != nil {
		return nil, err
	}
	conv := &converter{
		Book:    book,
		WorkDir: workDir,

		Macros:   make(map[string]macro),
		Envs:     make(map[string]*environment),
		Counters: make(map[string]*counterInfo),

		Glossary: make(map[string]*glsEntry),
		Messages: make(map[string]tokenizer.TokenList),

		PkgState: make(map[string]string),
		Packages: make(map[string]bool),

		unknown: make(map[string]bool),
	}
	if opts != nil {
		conv.Opts = *opts
	}
	if conv.Opts.SplitLevel <= 0 {
		conv.Opts.SplitLevel = 1
	}
	if conv.Opts.Language == language.Und {
		conv.Opts.Language = language.English
	}
	if book != nil {
		conv.Assets = assets.NewStore(book)
	}
	conv.addBuiltinMacros()
	return conv, nil
}

func (conv *converter) Close() error {
	return os.RemoveAll(conv.WorkDir)
}

// Convert reads the given LaTeX input file, converts the contents to
// HTML and writes the result to `book`.  The caller must flush the
// help set afterwards.
func Convert(book help.Writer, inputFileName string, opts *Options) (err error) {
	conv, err := newConverter(book, opts)
	if err != nil {
		return err
	}
	defer func() {
		e2 := conv.Close()
		if err == nil {
			err = e2
		}
	}()

	log.Println("tokenizing ...")
	err = conv.Tokenize(inputFileName)
	if err != nil {
		return err
	}

	log.Println("pass 1 ...")
	err = conv.Pass1()
	if err != nil {
		return err
	}

	log.Println("pass 2 ...")
	err = conv.Pass2()
	if err != nil {
		return err
	}

	log.Printf("%d images, %s", conv.Assets.Len(), conv.Assets.Size())
	return nil
}
