// pass2.go -
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
	"strconv"
	"strings"

	"github.com/seehuhn/texhelp/help"
	"github.com/seehuhn/texhelp/latex/tokenizer"
)

func (conv *converter) convertHTML(tokens tokenizer.TokenList) (string, error) {
	var res []string
	inMath := false
	var mathTokens tokenizer.TokenList

	savedLoc := conv.Loc
	defer func() { conv.Loc = savedLoc }()

	for _, token := range tokens {
		switch {
		case token.Type == tokenizer.TokenOther && token.Name == "$" && !inMath:
			inMath = true
		case token.Type == tokenizer.TokenOther && token.Name == "$" && inMath:
			inMath = false
			res = append(res, inlineMath(mathTokens))
			mathTokens = nil
		case inMath:
			mathTokens = append(mathTokens, token)
		case token.Type == tokenizer.TokenMacro:
			m, ok := conv.Macros[token.Name]
			if !ok {
				conv.unknownMacro(token)
				continue
			}
			if token.Loc != "" {
				conv.Loc = token.Loc
			}
			s, err := m.HTMLOutput(token.Args, conv)
			if err != nil {
				return "", err
			}
			res = append(res, s)
		case token.Type == tokenizer.TokenSpace:
			res = append(res, " ")
		case token.Type == tokenizer.TokenWord:
			res = append(res, html.EscapeString(token.Name))
		case token.Type == tokenizer.TokenOther:
			res = append(res, otherHTML(token.Name))
		case token.Type == tokenizer.TokenVerbatim:
			res = append(res, html.EscapeString(token.Name))
		}
	}
	if inMath {
		log.Printf("%s: unterminated formula", conv.Loc)
		res = append(res, inlineMath(mathTokens))
	}
	return strings.Join(res, ""), nil
}

func otherHTML(name string) string {
	switch name {
	case "~":
		return noBreakSpace
	case "``":
		return "<q>"
	case "''":
		return "</q>"
	case "`":
		return "‘"
	case "'":
		return "’"
	case "--":
		return "–"
	case "---":
		return "—"
	case "{", "}":
		return ""
	}
	return html.EscapeString(name)
}

func inlineMath(body tokenizer.TokenList) string {
	return `<span class="math">` + html.EscapeString(body.FormatMaths()) + `</span>`
}

func (conv *converter) unknownMacro(token *tokenizer.Token) {
	if conv.unknown[token.Name] {
		return
	}
	conv.unknown[token.Name] = true
	log.Printf("%s: unknown macro %q", token.Loc, token.Name)
}

// Pass2 converts the text to HTML.
func (conv *converter) Pass2() (err error) {
	var math *mathInfo
	var mathEnd isEnd
	var mathTokens tokenizer.TokenList
	mathPos := -1

	conv.clearCounters()
	w := newWriter(conv.Book)
	defer func() {
		e2 := w.Flush()
		if err == nil {
			err = e2
		}
	}()

	err = conv.readTokens(func(pos int, token *tokenizer.Token) error {
		// maths formulas
		if mathEnd == nil {
			math, mathEnd = conv.IsMathStart(token)
			if mathEnd != nil {
				mathTokens = nil
				mathPos = pos
				return nil
			}
		} else {
			if mathEnd(token) {
				mathEnd = nil
				return conv.writeMath(w, math, mathTokens, mathPos)
			}
			if token.Type != tokenizer.TokenMacro || token.Name != "\\label" {
				mathTokens = append(mathTokens, token)
			}
			return nil
		}

		return conv.writeToken(w, pos, token)
	})
	if err != nil {
		return err
	}

	return conv.addTargets()
}

func (conv *converter) writeMath(w *writer, math *mathInfo, body tokenizer.TokenList, pos int) error {
	if !math.Display {
		w.WriteString(inlineMath(body))
		return nil
	}

	var attr, eqno string
	if math.Counter != "" {
		num := conv.Counters[math.Counter].Inc()
		eqno = `<span class="eqno">(` + num + `)</span>`
	}
	if id := conv.xRefLookup(pos); id != "" {
		attr = ` id="` + id + `"`
	}
	return w.WriteRaw(`<div class="displaymath"` + attr + `>` + eqno +
		html.EscapeString(body.FormatMaths()) + "</div>")
}

// convertDetached converts text which is shown away from its place in
// the source, e.g. in the table of contents.  Such text creates no
// index anchors.
func (conv *converter) convertDetached(tokens tokenizer.TokenList) (string, error) {
	conv.detached++
	defer func() { conv.detached-- }()
	return conv.convertHTML(tokens)
}

// writeAnchors writes the anchors of all labels placed at pos.
func (conv *converter) writeAnchors(w *writer, pos int) {
	for _, label := range conv.Labels {
		if label.Pos == pos {
			w.WriteString(`<span id="` + label.ID + `"></span>`)
		}
	}
}

func (conv *converter) writeToken(w *writer, pos int, token *tokenizer.Token) error {
	switch {
	case token.Type == tokenizer.TokenMacro:
		conv.Loc = token.Loc
		switch token.Name {
		case "\\helpmaketitle":
			title, err := conv.convertDetached(conv.Title)
			if err != nil {
				return err
			}
			var authors []string
			for _, part := range splitAuthors(conv.Author) {
				author, err := conv.convertDetached(part)
				if err != nil {
					return err
				}
				authors = append(authors, strings.TrimSpace(author))
			}
			return w.WriteTitle(strings.TrimSpace(title), authors)
		case "\\helpsection":
			level, starred, titleToks, shortToks := sectionArgs(token)
			sec := conv.nextSection(level, starred)
			title, err := conv.convertHTML(titleToks)
			if err != nil {
				return err
			}
			text := title
			if len(shortToks) > 0 {
				text, err = conv.convertDetached(shortToks)
				if err != nil {
					return err
				}
			}
			return w.AddSection(&help.Section{
				Level:   level,
				Number:  sec.Number,
				Title:   title,
				Text:    plainText(text),
				ID:      conv.sectionID(pos),
				NewPage: sec.NewPage,
			})
		case "\\printglossary":
			return conv.printGlossary(w, token.Args, pos)
		case "\\begin":
			return conv.beginEnv(w, pos, token)
		case "\\end":
			return conv.endEnv(w, token)
		case "\\item":
			label, err := conv.convertHTML(token.Args[0].Value)
			if err != nil {
				return err
			}
			err = w.StartItem(label)
			if err != nil {
				return err
			}
			conv.writeAnchors(w, pos)
		case "\\label":
			conv.writeAnchors(w, pos)
		case "\\par":
			return w.EndParagraph()
		default:
			m, ok := conv.Macros[token.Name]
			if b, isBlock := m.(blockMacro); ok && isBlock {
				s, err := b(token.Args, conv)
				if err != nil {
					return err
				}
				return w.WriteRaw(s)
			}
			conv.writeAnchors(w, pos)
			s, err := conv.convertHTML(tokenizer.TokenList{token})
			if err != nil {
				return err
			}
			w.WriteString(s)
		}
	case token.Type == tokenizer.TokenWord:
		w.WriteString(html.EscapeString(token.Name))
	case token.Type == tokenizer.TokenOther:
		w.WriteString(otherHTML(token.Name))

	case len(conv.EnvStack) == 0:
		// Don't try to write space outside the {document} environment.

	case token.Type == tokenizer.TokenSpace:
		return w.EndWord()
	case token.Type == tokenizer.TokenEmptyLine:
		return w.EndParagraph()
	}
	return nil
}

// splitAuthors splits the argument of \author at "\and".
func splitAuthors(toks tokenizer.TokenList) []tokenizer.TokenList {
	var res []tokenizer.TokenList
	var cur tokenizer.TokenList
	for _, tok := range toks {
		if tok.Type == tokenizer.TokenMacro && tok.Name == "\\and" {
			res = append(res, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 || len(res) > 0 {
		res = append(res, cur)
	}
	return res
}

func (conv *converter) beginEnv(w *writer, pos int, token *tokenizer.Token) error {
	name := token.Args[0].String()
	if len(conv.EnvStack) == 0 {
		// the {document} environment does not create a block
		conv.EnvStack = append(conv.EnvStack, name)
		return nil
	}

	id := conv.xRefLookup(pos)
	if id == "" {
		id = "pos-" + strconv.Itoa(pos)
	}

	tag := "div"
	classes := []string{cssPrefix + name}
	var pfx string
	if env, ok := conv.Envs[name]; ok {
		if env.Tag != "" {
			tag = env.Tag
		}
		classes = append(classes, env.CSSClasses...)
		var num string
		if env.Counter != "" {
			num = conv.Counters[env.Counter].Inc()
		}
		if env.Tag != "figure" && env.Prefix != "" {
			pfx = "<b>" + env.Prefix
			if num != "" {
				pfx += noBreakSpace + num
			}
			if len(token.Args) > 1 && len(token.Args[1].Value) > 0 {
				note, err := conv.convertHTML(token.Args[1].Value)
				if err != nil {
					return err
				}
				pfx += " (" + note + ")"
			}
			pfx += ".</b>"
		}
	}

	err := w.StartBlock(tag, classes, id)
	if err == nil && pfx != "" {
		w.WriteString(pfx)
		err = w.EndWord()
	}
	conv.EnvStack = append(conv.EnvStack, name)
	return err
}

func (conv *converter) endEnv(w *writer, token *tokenizer.Token) error {
	name := token.Args[0].String()
	n := len(conv.EnvStack)
	idx := -1
	for i := n - 1; i >= 0; i-- {
		if conv.EnvStack[i] == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("%s: environment %s was not open", token.Loc, name)
		return nil
	}
	for len(conv.EnvStack) > idx {
		k := len(conv.EnvStack) - 1
		if k > idx {
			log.Printf("%s: environment %s was not closed", token.Loc, conv.EnvStack[k])
		}
		conv.EnvStack = conv.EnvStack[:k]
		if k > 0 {
			err := w.EndBlock()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// addTargets registers all link targets with the help set.
func (conv *converter) addTargets() error {
	for _, label := range conv.Labels {
		title := label.Name
		for _, sec := range conv.Sections {
			if sec.Pos == label.Pos {
				s, err := conv.convertDetached(sec.Title)
				if err != nil {
					return err
				}
				title = plainText(s)
			}
		}
		conv.Book.AddTarget(&help.Target{
			Key:    label.Label,
			Page:   label.Page,
			Anchor: label.ID,
			Type:   label.Type,
			Title:  title,
		})
	}
	for _, term := range conv.IndexTerms {
		conv.Book.AddTarget(&help.Target{
			Key:    term.Term,
			Page:   term.Page,
			Anchor: term.ID,
			Type:   "index",
			Title:  indexTitle(term.Term),
		})
	}
	return conv.addGlossaryTargets()
}
