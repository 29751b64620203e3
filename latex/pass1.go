// pass1.go - extract cross references and declarations
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
	"strconv"

	"github.com/seehuhn/texhelp/help"
	"github.com/seehuhn/texhelp/latex/tokenizer"
)

type sectionInfo struct {
	Level   int
	Number  string
	NewPage bool
}

// nextSection updates the section number, counters and page number
// for the start of a new section.  This must be called in the same way
// during both passes.
func (conv *converter) nextSection(level int, starred bool) *sectionInfo {
	info := &sectionInfo{
		Level:   level,
		NewPage: level <= conv.Opts.SplitLevel,
	}
	if !starred {
		conv.Section = conv.Section.step(level)
		conv.resetCounters(level)
		info.Number = conv.Section.String()
	}
	if info.NewPage {
		conv.Page++
	}
	return info
}

// sectionArgs decodes the arguments of \helpsection.
func sectionArgs(token *tokenizer.Token) (level int, starred bool, title, short tokenizer.TokenList) {
	level, err := strconv.Atoi(token.Args[0].String())
	if err != nil || level < 1 {
		log.Printf("%s: invalid section level %q", token.Loc, token.Args[0].String())
		level = 1
	}
	return level, token.Args[1].IsStar(), token.Args[3].Value, token.Args[2].Value
}

// flowArgs returns the arguments of a macro which pass 2 converts
// exactly once, at the place where the macro occurs.
func (conv *converter) flowArgs(token *tokenizer.Token) []*tokenizer.Arg {
	switch token.Name {
	case "\\begin", "\\item", "\\printglossary":
		return token.Args
	case "\\helpsection":
		return token.Args[3:]
	case "\\caption":
		return token.Args[1:]
	case "\\label", "\\index", "\\helpmsg":
		return nil
	}
	switch conv.Macros[token.Name].(type) {
	case nil, declaration, mIgnoreClass, mSubst:
		return nil
	case *glsMacro:
		return token.Args[2:]
	}
	return token.Args
}

// Pass1 extracts the cross-references and executes all declarations.
func (conv *converter) Pass1() error {
	var labels []*xRef
	ref := -1
	refType := ""
	refName := ""

	var mathEnd isEnd
	var mathTokens tokenizer.TokenList

	addLabel := func(label string, pos int) {
		target := &xRef{
			Label: label,
			Page:  help.PageName(conv.Page),
			ID:    xRefNormalise(label, labels),
			Pos:   ref,
			Type:  refType,
			Name:  refName,
		}
		if ref < 0 {
			// not attached to anything: the anchor is placed
			// at the position of the label
			target.Pos = pos
		}
		labels = append(labels, target)
	}
	addIndex := func(term string) {
		conv.indexCount++
		conv.IndexTerms = append(conv.IndexTerms, &indexTerm{
			Term: term,
			ID:   indexID(conv.indexCount),
			Page: help.PageName(conv.Page),
		})
	}

	// scanArgs finds labels and index entries inside macro
	// arguments.  Nested labels are placed at the position of the
	// enclosing top-level token.
	var scanArgs func(args []*tokenizer.Arg, pos int)
	scanArgs = func(args []*tokenizer.Arg, pos int) {
		for _, arg := range args {
			lists := []tokenizer.TokenList{arg.Value}
			for _, f := range arg.Fields {
				lists = append(lists, f.Value)
			}
			for _, toks := range lists {
				inMath := false
				for _, tok := range toks {
					if tok.Type == tokenizer.TokenOther && tok.Name == "$" {
						inMath = !inMath
					}
					if inMath || tok.Type != tokenizer.TokenMacro {
						continue
					}
					switch tok.Name {
					case "\\label":
						addLabel(tok.Args[0].String(), pos)
					case "\\index":
						addIndex(tok.Args[0].String())
					default:
						scanArgs(conv.flowArgs(tok), pos)
					}
				}
			}
		}
	}

	conv.clearCounters()

	// The following loop must match the corresponding code in
	// the .Pass2() method.
	err := conv.readTokens(func(pos int, token *tokenizer.Token) error {
		// maths formulas
		if mathEnd == nil {
			var info *mathInfo
			info, mathEnd = conv.IsMathStart(token)
			if mathEnd != nil {
				mathTokens = nil
				if info.Counter != "" {
					ref = pos
					refType = "equation"
					refName = conv.Counters[info.Counter].Inc()
				}
				return nil
			}
		} else {
			// we only need to check this in once, in pass 1
			if token.Type == tokenizer.TokenEmptyLine {
				log.Println("maths environment not terminated\n" +
					mathTokens.FormatMaths())
				return ErrUnterminatedMath
			}
			if mathEnd(token) {
				mathEnd = nil
				return nil
			}
			mathTokens = append(mathTokens, token)
			if token.Type != tokenizer.TokenMacro || token.Name != "\\label" {
				return nil
			}
		}

		if token.Type != tokenizer.TokenMacro {
			return nil
		}
		conv.Loc = token.Loc

		// handle cross-references
		switch token.Name {
		case "\\helpsection":
			level, starred, title, _ := sectionArgs(token)
			sec := conv.nextSection(level, starred)
			ref = pos
			refType = "section"
			refName = sec.Number
			conv.Sections = append(conv.Sections, &tocEntry{
				Level:  level,
				Number: sec.Number,
				Title:  title,
				Page:   help.PageName(conv.Page),
				Pos:    pos,
			})
		case "\\printglossary":
			level := glossaryLevel(token.Args)
			conv.nextSection(level, true)
			conv.GlsPage = help.PageName(conv.Page)
			ref = pos
			refType = "glossary"
			refName = ""
			conv.Sections = append(conv.Sections, &tocEntry{
				Level: level,
				Title: glossaryTitle(token.Args),
				Page:  conv.GlsPage,
				Pos:   pos,
			})
		case "\\begin":
			name := token.Args[0].String()
			if env, ok := conv.Envs[name]; ok && env.Counter != "" {
				ref = pos
				refType = name
				refName = conv.Counters[env.Counter].Inc()
			}
		case "\\label":
			addLabel(token.Args[0].String(), pos)
		case "\\index":
			addIndex(token.Args[0].String())
		default:
			m, ok := conv.Macros[token.Name].(declaration)
			if ok {
				return m.Declare(token.Args, conv)
			}
		}
		scanArgs(conv.flowArgs(token), pos)
		return nil
	})
	if err != nil {
		return err
	}
	if mathEnd != nil {
		log.Println("maths environment not terminated\n" +
			mathTokens.FormatMaths())
		return ErrUnterminatedMath
	}

	conv.Labels = labels
	return nil
}
