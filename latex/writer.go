// writer.go - block-buffered HTML output
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
	"strings"

	htmlparse "golang.org/x/net/html"

	"github.com/seehuhn/texhelp/help"
)

const outputLineWidth = 79

const cssPrefix = "latex-"

// A block is an open structural element (environment, list, figure)
// of the output.
type block struct {
	Tag    string
	Anchor string

	item string
}

// writer formats paragraphs of HTML.  Output is collected per block
// and passed on to the help set at every block boundary, together
// with the text of the block for the search index.
type writer struct {
	out help.Writer

	word       []byte
	line       []string
	lineLength int

	buf       strings.Builder
	blocks    []*block
	sectionID string
}

func newWriter(out help.Writer) *writer {
	return &writer{
		out: out,
	}
}

func (w *writer) Flush() error {
	e1 := w.EndParagraph()
	e2 := w.flushBlock()
	return mergeErrors(e1, e2)
}

// context returns the search context of the innermost open block.
func (w *writer) context() string {
	ctx := w.out.Page()
	for i := len(w.blocks) - 1; i >= 0; i-- {
		if w.blocks[i].Anchor != "" {
			return ctx + "#" + w.blocks[i].Anchor
		}
	}
	if w.sectionID != "" {
		ctx += "#" + w.sectionID
	}
	return ctx
}

// flushBlock passes the collected output on to the help set, and the
// text contained in this output to the search index.
func (w *writer) flushBlock() error {
	if w.buf.Len() == 0 {
		return nil
	}
	out := w.buf.String()
	w.buf.Reset()

	err := w.out.WriteString(out)
	if err != nil {
		return err
	}
	text := textContent(out)
	if strings.TrimSpace(text) != "" {
		w.out.AddText(w.context(), text)
	}
	return nil
}

func (w *writer) WriteTitle(title string, authors []string) error {
	e1 := w.Flush()
	e2 := w.out.AddTitle(title, authors)
	return mergeErrors(e1, e2)
}

func (w *writer) AddSection(sec *help.Section) error {
	e1 := w.Flush()
	e2 := w.out.AddSection(sec)
	w.sectionID = sec.ID
	return mergeErrors(e1, e2)
}

func (w *writer) StartBlock(tag string, classes []string, id string) error {
	err := w.Flush()
	if err != nil {
		return err
	}

	attr := ""
	if id != "" {
		attr = ` id="` + id + `"`
	}
	if len(classes) > 0 {
		attr += ` class="` + strings.Join(classes, " ") + `"`
	}
	fmt.Fprintf(&w.buf, "<%s%s>\n", tag, attr)
	w.blocks = append(w.blocks, &block{Tag: tag, Anchor: id})
	return nil
}

func (w *writer) EndBlock() error {
	n := len(w.blocks)
	if n == 0 {
		return w.EndParagraph()
	}
	b := w.blocks[n-1]

	err := w.EndParagraph()
	if err != nil {
		return err
	}
	if b.item != "" {
		w.buf.WriteString("</" + b.item + ">\n")
	}
	w.buf.WriteString("</" + b.Tag + ">\n")
	err = w.flushBlock()
	w.blocks = w.blocks[:n-1]
	return err
}

// StartItem starts a new item of the innermost list.  The label is
// used for description lists, and shown in front of the item text
// otherwise.
func (w *writer) StartItem(label string) error {
	err := w.EndParagraph()
	if err != nil {
		return err
	}
	n := len(w.blocks)
	if n == 0 {
		w.WriteString(label)
		return w.EndWord()
	}
	b := w.blocks[n-1]
	if b.item != "" {
		w.buf.WriteString("</" + b.item + ">\n")
	}
	if b.Tag == "dl" {
		w.buf.WriteString("<dt>" + label + "</dt>\n<dd>\n")
		b.item = "dd"
		return nil
	}
	w.buf.WriteString("<li>\n")
	b.item = "li"
	if label != "" {
		w.WriteString(`<span class="` + cssPrefix + `label">` + label + `</span>`)
		return w.EndWord()
	}
	return nil
}

// WriteRaw ends the current paragraph and then writes s unchanged.
func (w *writer) WriteRaw(s string) error {
	err := w.EndParagraph()
	if err != nil {
		return err
	}
	w.buf.WriteString(s)
	if s != "" && !strings.HasSuffix(s, "\n") {
		w.buf.WriteString("\n")
	}
	return nil
}

func (w *writer) EndParagraph() error {
	e1 := w.endWord(true)
	if len(w.line) == 0 {
		return e1
	}
	e2 := w.writeLine()
	return mergeErrors(e1, e2)
}

func (w *writer) writeLine() error {
	if len(w.line) == 0 {
		return nil
	}

	lineStr := strings.Join(w.line, " ") + "\n"
	w.line = nil
	_, err := w.buf.WriteString(lineStr)
	return err
}

func (w *writer) endWord(endPar bool) error {
	word := string(w.word)
	w.word = nil

	if strings.Contains(word, noBreakSpace) {
		word = "<span class=\"" + cssPrefix + "nw\">" + word + "</span>"
	}
	if endPar && (word != "" || len(w.line) > 0) {
		word = word + "</p>"
	}
	l := len(word)
	if l == 0 {
		return nil
	}

	if len(w.line) == 0 {
		w.line = []string{"<p>" + word}
		w.lineLength = 3 + l
	} else if w.lineLength+1+l <= outputLineWidth {
		w.line = append(w.line, word)
		w.lineLength += 1 + l
	} else {
		err := w.writeLine()
		if err != nil {
			return err
		}
		w.line = []string{word}
		w.lineLength = l
	}
	return nil
}

func (w *writer) EndWord() error {
	return w.endWord(false)
}

func (w *writer) WriteString(s string) {
	w.word = append(w.word, []byte(s)...)
}

// blockTags separate words in the text content of HTML.
var blockTags = map[string]bool{
	"blockquote": true,
	"br":         true,
	"dd":         true,
	"div":        true,
	"dt":         true,
	"figcaption": true,
	"figure":     true,
	"li":         true,
	"p":          true,
	"pre":        true,
	"section":    true,
}

// textContent returns the text of an HTML fragment, with all markup
// removed and entities decoded.
func textContent(fragment string) string {
	var res []string
	z := htmlparse.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case htmlparse.ErrorToken:
			return strings.Join(res, "")
		case htmlparse.TextToken:
			res = append(res, string(z.Text()))
		case htmlparse.StartTagToken, htmlparse.EndTagToken, htmlparse.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				res = append(res, " ")
			}
		}
	}
}

// plainText converts HTML to text on a single line.
func plainText(fragment string) string {
	return strings.Join(strings.Fields(textContent(fragment)), " ")
}

func escape(s string) string {
	return html.EscapeString(s)
}
