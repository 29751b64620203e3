// images.go - images and hyperlinks
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
	"fmt"
	"html"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/seehuhn/texhelp/latex/tokenizer"
)

// imageExtensions lists the file name extensions tried, in order, for
// image names given without an extension.
var imageExtensions = []string{".svg", ".png", ".jpg", ".jpeg", ".gif"}

// findImage locates an image file.  Relative directories are
// interpreted relative to the directory of the LaTeX source.
func (conv *converter) findImage(dir, name string) (string, error) {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(conv.SourceDir, dir)
	}
	base := filepath.Join(dir, filepath.FromSlash(name))
	if filepath.Ext(name) != "" {
		_, err := os.Stat(base)
		return base, err
	}
	for _, ext := range imageExtensions {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, nil
		}
	}
	return "", fmt.Errorf("%s: %w", base, os.ErrNotExist)
}

// imageHTML copies an image into the help set and returns the <img>
// element showing it.  Missing images are reported and shown as an
// error marker, so that the remaining document can still be
// converted.
func (conv *converter) imageHTML(dir, name, attr string) string {
	fileName, err := conv.findImage(dir, name)
	var path string
	if err == nil {
		if conv.Assets == nil {
			path = filepath.ToSlash(filepath.Base(fileName))
		} else {
			path, err = conv.Assets.Add(fileName)
		}
	}
	if err != nil {
		log.Printf("%s: image %q: %v", conv.Loc, name, err)
		return `<span class="error">` + html.EscapeString(name) + `</span>`
	}
	return fmt.Sprintf(`<img src="%s"%s/>`, html.EscapeString(path), attr)
}

func (conv *converter) iconHTML(name, alt string) string {
	attr := fmt.Sprintf(` class="icon" alt="%s"`, html.EscapeString(alt))
	return conv.imageHTML(conv.Opts.IconDir, name, attr)
}

// cssWidth converts a LaTeX length into a CSS width.  Multiples of
// \textwidth and \linewidth become percentages.
func cssWidth(length string) (string, bool) {
	length = strings.TrimSpace(length)
	for _, rel := range []string{"\\textwidth", "\\linewidth"} {
		if !strings.HasSuffix(length, rel) {
			continue
		}
		factor := strings.TrimSpace(strings.TrimSuffix(length, rel))
		if factor == "" {
			return "100%", true
		}
		x, err := strconv.ParseFloat(factor, 64)
		if err != nil || x <= 0 {
			return "", false
		}
		return strconv.FormatFloat(100*x, 'f', -1, 64) + "%", true
	}
	for _, unit := range []string{"pt", "mm", "cm", "in", "em", "ex", "px"} {
		if num, ok := strings.CutSuffix(length, unit); ok {
			if _, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err == nil {
				return strings.TrimSpace(num) + unit, true
			}
		}
	}
	return "", false
}

func mIncludegraphics(args []*tokenizer.Arg, conv *converter) (string, error) {
	name := strings.TrimSpace(args[1].String())

	alt := filepath.Base(name)
	if val, ok := args[0].Field("alt"); ok {
		s, err := conv.convertHTML(val)
		if err != nil {
			return "", err
		}
		alt = plainText(s)
	}
	attr := fmt.Sprintf(` alt="%s"`, html.EscapeString(alt))
	if val, ok := args[0].Field("width"); ok {
		if w, ok := cssWidth(val.FormatText()); ok {
			attr += fmt.Sprintf(` style="width:%s"`, w)
		} else {
			log.Printf("%s: unsupported image width %q", conv.Loc, val.FormatText())
		}
	}
	return conv.imageHTML("", name, attr), nil
}

func mHref(args []*tokenizer.Arg, conv *converter) (string, error) {
	url := strings.TrimSpace(args[0].String())
	body, err := conv.convertHTML(args[1].Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(url), body), nil
}

func mURL(args []*tokenizer.Arg, conv *converter) (string, error) {
	url := html.EscapeString(strings.TrimSpace(args[0].String()))
	return fmt.Sprintf(`<a href="%s"><code>%s</code></a>`, url, url), nil
}

func init() {
	addPackage("graphicx", func(conv *converter, options string) {
		conv.Macros["\\includegraphics"] = funcMacro(mIncludegraphics)
	})
	addPackage("hyperref", func(conv *converter, options string) {
		conv.Macros["\\href"] = funcMacro(mHref)
		conv.Macros["\\url"] = funcMacro(mURL)
	})
}
