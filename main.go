// main.go - convert LaTeX documents into HTML help sets
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

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/seehuhn/texhelp/help"
	"github.com/seehuhn/texhelp/latex"
	"github.com/seehuhn/texhelp/search"
)

// config holds the settings of a conversion run.  Defaults are taken
// from the environment and can be overridden by command line flags.
type config struct {
	Output     string `env:"TEXHELP_OUTPUT"`
	Format     string `env:"TEXHELP_FORMAT" envDefault:"dir"`
	Language   string `env:"TEXHELP_LANG" envDefault:"en"`
	SplitLevel int    `env:"TEXHELP_SPLIT_LEVEL" envDefault:"1"`
	IconDir    string `env:"TEXHELP_ICON_DIR" envDefault:"icons"`
	StopWords  string `env:"TEXHELP_STOP_WORDS"`
	SearchDB   bool   `env:"TEXHELP_SEARCH_DB"`
}

var errUsage = errors.New("usage: texhelp [options] <input.tex>")

func parseConfig(args []string) (*config, string, error) {
	cfg := &config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("texhelp", flag.ContinueOnError)
	fs.StringVar(&cfg.Output, "output", cfg.Output, "the output directory or zip file")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format, \"dir\" or \"zip\"")
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "the document language")
	fs.IntVar(&cfg.SplitLevel, "split", cfg.SplitLevel, "deepest section level which starts a new page")
	fs.StringVar(&cfg.IconDir, "icons", cfg.IconDir, "the directory containing icon images")
	fs.StringVar(&cfg.StopWords, "stop-words", cfg.StopWords, "file with additional stop-words for the search index")
	fs.BoolVar(&cfg.SearchDB, "search-db", cfg.SearchDB, "also write the search index as an SQLite database")
	err = fs.Parse(args)
	if err != nil {
		return nil, "", err
	}
	if fs.NArg() != 1 {
		return nil, "", errUsage
	}
	inputName := fs.Arg(0)

	switch cfg.Format {
	case "dir", "zip":
		// pass
	default:
		return nil, "", fmt.Errorf("invalid output format %q", cfg.Format)
	}
	if cfg.Output == "" {
		base := strings.TrimSuffix(filepath.Base(inputName), ".tex")
		if cfg.Format == "zip" {
			cfg.Output = base + ".zip"
		} else {
			cfg.Output = base + "-help"
		}
	}
	return cfg, inputName, nil
}

func readStopWords(fileName string) ([]string, error) {
	if fileName == "" {
		return nil, nil
	}
	fd, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return search.ReadStopWords(fd)
}

func run(cfg *config, inputName string) (err error) {
	lang, err := language.Parse(cfg.Language)
	if err != nil {
		return err
	}
	stopWords, err := readStopWords(cfg.StopWords)
	if err != nil {
		return err
	}
	settings := &help.Settings{
		Language:  lang,
		StopWords: stopWords,
		SearchDB:  cfg.SearchDB,
	}

	log.Println("writing", cfg.Output)
	identifier := filepath.Base(inputName)
	var book help.Writer
	var out io.Closer
	if cfg.Format == "zip" {
		fd, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		out = fd
		book, err = help.NewZipWriter(fd, identifier, settings)
		if err != nil {
			fd.Close()
			return err
		}
	} else {
		book, err = help.NewDirWriter(cfg.Output, identifier, settings)
		if err != nil {
			return err
		}
	}
	defer func() {
		if err != nil {
			// Don't leave a help set with a partial table of
			// contents behind.
			if out != nil {
				out.Close()
				os.Remove(cfg.Output)
			}
			return
		}
		err = book.Flush()
		if out != nil {
			e2 := out.Close()
			if err == nil {
				err = e2
			}
		}
	}()

	opts := &latex.Options{
		SplitLevel: cfg.SplitLevel,
		IconDir:    cfg.IconDir,
		Language:   lang,
	}
	return latex.Convert(book, inputName, opts)
}

func main() {
	log.Println("start")
	cfg, inputName, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		log.Fatal(err)
	}

	err = run(cfg, inputName)
	if err != nil {
		var se *latex.SyntaxError
		if errors.As(err, &se) {
			log.Fatal(se.Localize(language.Make(cfg.Language)))
		}
		log.Fatal(err)
	}
	log.Println("done")
}
