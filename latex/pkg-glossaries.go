// pkg-glossaries.go - glossary entries and references
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
	"html"
	"log"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"

	"github.com/seehuhn/texhelp/help"
	"github.com/seehuhn/texhelp/latex/tokenizer"
)

type glsEntry struct {
	Label    string
	Fields   map[string]tokenizer.TokenList
	Parent   string
	Children []string

	used bool
}

func (e *glsEntry) field(key string) tokenizer.TokenList {
	return e.Fields[key]
}

func (e *glsEntry) text() tokenizer.TokenList {
	if text, ok := e.Fields["text"]; ok {
		return text
	}
	return e.Fields["name"]
}

func (e *glsEntry) plural() tokenizer.TokenList {
	if plural, ok := e.Fields["plural"]; ok {
		return plural
	}
	text := e.text()
	res := make(tokenizer.TokenList, len(text), len(text)+1)
	copy(res, text)
	return append(res, &tokenizer.Token{Type: tokenizer.TokenWord, Name: "s"})
}

func (e *glsEntry) first() tokenizer.TokenList {
	if first, ok := e.Fields["first"]; ok && !e.used {
		return first
	}
	return e.text()
}

func addGlossariesMacros(conv *converter, options string) {
	conv.Macros["\\newglossaryentry"] = declaration(dNewGlossaryEntry)
	conv.Macros["\\makeglossaries"] = mIgnore
	conv.Macros["\\glsadd"] = funcMacro(mGlsAdd)
	conv.Macros["\\glschildren"] = blockMacro(mGlsChildren)

	conv.Macros["\\gls"] = &glsMacro{get: (*glsEntry).first}
	conv.Macros["\\Gls"] = &glsMacro{get: (*glsEntry).first, upper: true}
	conv.Macros["\\glspl"] = &glsMacro{get: (*glsEntry).plural}
	conv.Macros["\\Glspl"] = &glsMacro{get: (*glsEntry).plural, upper: true}
	conv.Macros["\\glstext"] = &glsMacro{get: (*glsEntry).text}
	conv.Macros["\\Glstext"] = &glsMacro{get: (*glsEntry).text, upper: true}
	for name, key := range map[string]string{
		"name":   "name",
		"desc":   "description",
		"symbol": "symbol",
	} {
		key := key
		get := func(e *glsEntry) tokenizer.TokenList { return e.field(key) }
		conv.Macros["\\gls"+name] = &glsMacro{get: get}
		if name != "symbol" {
			conv.Macros["\\Gls"+name] = &glsMacro{get: get, upper: true}
		}
	}
}

func dNewGlossaryEntry(args []*tokenizer.Arg, conv *converter) error {
	label := args[0].String()
	entry := &glsEntry{
		Label:  label,
		Fields: make(map[string]tokenizer.TokenList),
	}
	for _, f := range args[1].Fields {
		entry.Fields[f.Key] = f.Value
	}
	if _, ok := entry.Fields["name"]; !ok {
		log.Printf("%s: glossary entry %q has no name", conv.Loc, label)
		entry.Fields["name"] = tokenizer.TokenList{
			{Type: tokenizer.TokenVerbatim, Name: label},
		}
	}

	old, exists := conv.Glossary[label]
	if exists {
		log.Printf("%s: glossary entry %q redefined", conv.Loc, label)
		entry.Children = old.Children
	}
	if parent, ok := entry.Fields["parent"]; ok {
		entry.Parent = parent.FormatText()
		p, err := conv.glsEntry(entry.Parent)
		if err != nil {
			return err
		}
		if !slices.Contains(p.Children, label) {
			p.Children = append(p.Children, label)
		}
	}
	if exists && old.Parent != "" && old.Parent != entry.Parent {
		if p, ok := conv.Glossary[old.Parent]; ok {
			p.Children = slices.DeleteFunc(p.Children, func(c string) bool { return c == label })
		}
	}
	conv.Glossary[label] = entry
	return nil
}

// glsEntry returns the glossary entry with the given label.
func (conv *converter) glsEntry(label string) (*glsEntry, error) {
	entry, ok := conv.Glossary[label]
	if !ok {
		return nil, conv.syntaxError(MsgGlossaryEntryUndefined, label)
	}
	return entry, nil
}

func glsAnchor(label string) string {
	return "gls-" + normaliseID(label)
}

// glsLink returns body as a link to the glossary entry.  If no
// glossary is printed, or if hyper is false, no link is created.
func (conv *converter) glsLink(entry *glsEntry, body string, hyper bool) (string, error) {
	if !hyper || conv.GlsPage == "" {
		return `<span class="gls">` + body + `</span>`, nil
	}
	desc, err := conv.convertDetached(entry.field("description"))
	if err != nil {
		return "", err
	}
	title := ""
	if desc != "" {
		title = ` title="` + html.EscapeString(plainText(desc)) + `"`
	}
	return `<a class="gls" href="` + conv.GlsPage + "#" + glsAnchor(entry.Label) +
		`"` + title + `>` + body + `</a>`, nil
}

// capitalise converts the first letter of the first word to upper
// case, using the case mapping rules of the document language.
func (conv *converter) capitalise(toks tokenizer.TokenList) tokenizer.TokenList {
	res := make(tokenizer.TokenList, len(toks))
	copy(res, toks)
	for i, tok := range res {
		if tok.Type != tokenizer.TokenWord && tok.Type != tokenizer.TokenVerbatim {
			continue
		}
		if tok.Name == "" {
			continue
		}
		_, n := utf8.DecodeRuneInString(tok.Name)
		upper := cases.Upper(conv.Opts.Language)
		res[i] = &tokenizer.Token{
			Type: tok.Type,
			Name: upper.String(tok.Name[:n]) + tok.Name[n:],
		}
		break
	}
	return res
}

// glsMacro implements the \gls family of commands.  The arguments are
// [options]{label}[insert].
type glsMacro struct {
	get   func(e *glsEntry) tokenizer.TokenList
	upper bool
}

func (m *glsMacro) HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error) {
	label := args[1].String()
	entry, err := conv.glsEntry(label)
	if err != nil {
		return "", err
	}

	text := m.get(entry)
	if m.upper {
		text = conv.capitalise(text)
	}
	body, err := conv.convertDetached(text)
	if err != nil {
		return "", err
	}
	insert, err := conv.convertHTML(args[2].Value)
	if err != nil {
		return "", err
	}
	entry.used = true

	hyper := true
	if val, ok := args[0].Field("hyper"); ok && val.FormatText() == "false" {
		hyper = false
	}
	return conv.glsLink(entry, body+insert, hyper)
}

func mGlsAdd(args []*tokenizer.Arg, conv *converter) (string, error) {
	entry, err := conv.glsEntry(args[1].String())
	if err != nil {
		return "", err
	}
	entry.used = true
	return "", nil
}

// glsItem formats an entry name with link, followed by the
// description.
func (conv *converter) glsItem(entry *glsEntry) (string, error) {
	name, err := conv.convertDetached(entry.field("name"))
	if err != nil {
		return "", err
	}
	link, err := conv.glsLink(entry, name, true)
	if err != nil {
		return "", err
	}
	desc, err := conv.convertDetached(entry.field("description"))
	if err != nil {
		return "", err
	}
	if desc == "" {
		return link, nil
	}
	return link + ": " + desc, nil
}

func mGlsChildren(args []*tokenizer.Arg, conv *converter) (string, error) {
	label := args[0].String()
	entry, err := conv.glsEntry(label)
	if err != nil {
		return "", err
	}
	if len(entry.Children) == 0 {
		return "", conv.syntaxError(MsgGlossaryChildrenMissing, label)
	}

	res := []string{`<ul class="gls-children">`}
	for _, child := range entry.Children {
		item, err := conv.glsItem(conv.Glossary[child])
		if err != nil {
			return "", err
		}
		res = append(res, "<li>"+item+"</li>")
	}
	res = append(res, "</ul>")
	return strings.Join(res, "\n"), nil
}

func glossaryLevel(args []*tokenizer.Arg) int {
	if len(args) > 0 {
		if val, ok := args[0].Field("level"); ok {
			level, err := strconv.Atoi(val.FormatText())
			if err == nil && level > 0 {
				return level
			}
		}
	}
	return 1
}

func glossaryTitle(args []*tokenizer.Arg) tokenizer.TokenList {
	if len(args) > 0 {
		if val, ok := args[0].Field("title"); ok {
			return val
		}
	}
	return tokenizer.TokenList{{Type: tokenizer.TokenWord, Name: "Glossary"}}
}

// sortedEntries returns the labels of the given glossary entries,
// sorted using the collation rules of the document language.
func (conv *converter) sortedEntries(labels []string) []string {
	keys := make(map[string]string, len(labels))
	for _, label := range labels {
		entry := conv.Glossary[label]
		key, ok := entry.Fields["sort"]
		if !ok {
			key = entry.field("name")
		}
		keys[label] = key.FormatText()
	}

	res := make([]string, len(labels))
	copy(res, labels)
	c := collate.New(conv.Opts.Language, collate.IgnoreCase)
	sort.SliceStable(res, func(i, j int) bool {
		return c.CompareString(keys[res[i]], keys[res[j]]) < 0
	})
	return res
}

func (conv *converter) glossaryList(labels []string) ([]string, error) {
	res := []string{`<dl class="glossary">`}
	for _, label := range conv.sortedEntries(labels) {
		entry := conv.Glossary[label]
		name, err := conv.convertDetached(entry.field("name"))
		if err != nil {
			return nil, err
		}
		if sym := entry.field("symbol"); len(sym) > 0 {
			s, err := conv.convertDetached(sym)
			if err != nil {
				return nil, err
			}
			name += " (" + s + ")"
		}
		desc, err := conv.convertDetached(entry.field("description"))
		if err != nil {
			return nil, err
		}
		res = append(res,
			`<dt id="`+glsAnchor(label)+`">`+name+`</dt>`,
			"<dd>"+desc)
		if len(entry.Children) > 0 {
			sub, err := conv.glossaryList(entry.Children)
			if err != nil {
				return nil, err
			}
			res = append(res, sub...)
		}
		res = append(res, "</dd>")
	}
	res = append(res, "</dl>")
	return res, nil
}

// printGlossary writes the glossary as a new section.
func (conv *converter) printGlossary(w *writer, args []*tokenizer.Arg, pos int) error {
	level := glossaryLevel(args)
	sec := conv.nextSection(level, true)
	title, err := conv.convertHTML(glossaryTitle(args))
	if err != nil {
		return err
	}
	err = w.AddSection(&help.Section{
		Level:   level,
		Title:   title,
		Text:    plainText(title),
		ID:      conv.sectionID(pos),
		NewPage: sec.NewPage,
	})
	if err != nil {
		return err
	}

	var top []string
	for label, entry := range conv.Glossary {
		if entry.Parent == "" {
			top = append(top, label)
		}
	}
	sort.Strings(top)
	lines, err := conv.glossaryList(top)
	if err != nil {
		return err
	}
	return w.WriteRaw(strings.Join(lines, "\n"))
}

func (conv *converter) addGlossaryTargets() error {
	if conv.GlsPage == "" {
		return nil
	}
	var labels []string
	for label := range conv.Glossary {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		name, err := conv.convertDetached(conv.Glossary[label].field("name"))
		if err != nil {
			return err
		}
		conv.Book.AddTarget(&help.Target{
			Key:    label,
			Page:   conv.GlsPage,
			Anchor: glsAnchor(label),
			Type:   "glossary",
			Title:  plainText(name),
		})
	}
	return nil
}

func init() {
	addPackage("glossaries", addGlossariesMacros)
}
