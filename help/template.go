// template.go - HTML fragments of help pages
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
	"embed"
	"io"
	"strings"
	"text/template"
)

//go:embed tmpl
var templateFS embed.FS

// pageTemplates holds one template per file in tmpl/, named after
// the file.  The files in tmpl/parts define the blocks shared between
// pages.  Text passed to the templates is already HTML.
var pageTemplates = template.Must(template.New("help").
	Funcs(template.FuncMap{"formatlist": formatList}).
	ParseFS(templateFS, "tmpl/*.html", "tmpl/*.css", "tmpl/parts/*.html"))

// formatList joins names in the form "A, B and C".
func formatList(names []string) string {
	n := len(names)
	if n < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:n-1], ", ") + " and " + names[n-1]
}

// execTemplate writes the named template to out.  Inside the
// template, .This refers to data and .Book to the help set.
func (w *book) execTemplate(out io.Writer, name string, data any) error {
	return pageTemplates.ExecuteTemplate(out, name, map[string]any{
		"This": data,
		"Book": w,
	})
}

// createFromTemplate stores the output of the named template as a
// file of the help set.
func (w *book) createFromTemplate(path, name string, data any) error {
	out, err := w.driver.Create(path)
	if err != nil {
		return err
	}
	err = w.execTemplate(out, name, data)
	return mergeErrors(err, out.Close())
}
