// macros.go -
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
	"time"

	"github.com/seehuhn/texhelp/latex/tokenizer"
)

const (
	noBreakSpace      = "\u00a0"
	thinSpace         = "\u2009"
	horizonalEllipsis = "\u2026"
)

var pkgInit = make(map[string]func(conv *converter, options string))

// addPackage registers the converter macros for a LaTeX package.
func addPackage(name string, fn func(conv *converter, options string)) {
	pkgInit[name] = fn
}

type macro interface {
	HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error)
}

// declaration macros are executed during pass 1 and produce no output.
type declaration func(args []*tokenizer.Arg, conv *converter) error

func (m declaration) HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error) {
	return "", nil
}

func (m declaration) Declare(args []*tokenizer.Arg, conv *converter) error {
	return m(args, conv)
}

// blockMacro produces block-level HTML.  On the top level of the
// document the output is written outside of any paragraph.
type blockMacro func(args []*tokenizer.Arg, conv *converter) (string, error)

func (m blockMacro) HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error) {
	return m(args, conv)
}

func (conv *converter) addBuiltinMacros() {
	// builtin help set support
	conv.Macros["\\helpauthor"] = declaration(dHelpAuthor)
	conv.Macros["\\helptitle"] = declaration(dHelpTitle)

	// TeX/LaTeX macros
	conv.Macros["\\documentclass"] = declaration(dDocumentclass)
	conv.Macros["\\usepackage"] = declaration(dUsePackage)
	conv.Macros["\\label"] = mIgnore // handled during pass 1
	conv.Macros["\\par"] = mIgnore
	conv.Macros["\\ref"] = funcMacro(mRef)
	conv.Macros["\\pageref"] = funcMacro(mRef)
	conv.Macros["\\index"] = funcMacro(mIndex)
	conv.Macros["\\caption"] = blockMacro(mCaption)
	conv.Macros["\\tableofcontents"] = blockMacro(mTableOfContents)
	conv.Macros["\\verb"] = funcMacro(mVerb)
	conv.Macros["%verbatim%"] = blockMacro(mVerbatim)
	conv.Macros["\\mbox"] = funcMacro(mArg)
	conv.Macros["\\today"] = funcMacro(mToday)
	conv.Macros["\\hskip"] = mSubst(" ")
	for name, out := range map[string]string{
		"\\textit":    "i",
		"\\textbf":    "b",
		"\\emph":      "em",
		"\\texttt":    "code",
		"\\textsf":    `span class="` + cssPrefix + `sf"`,
		"\\underline": "u",
	} {
		conv.Macros[name] = mHTMLTag(out)
	}
	for name, out := range map[string]string{
		"\\dots":  horizonalEllipsis,
		"\\ldots": horizonalEllipsis,
		"\\LaTeX": "LaTeX",
		"\\TeX":   "TeX",
		"\\,":     thinSpace,
		"\\\\":    "<br/>",
	} {
		conv.Macros[name] = mSubst(out)
	}
	for _, c := range []string{"{", "}", "%", "&", "#", "_", "$"} {
		conv.Macros["\\"+c] = mSubst(html.EscapeString(c))
	}

	conv.Levels = articleLevels
	conv.Counters["equation"] = &counterInfo{}
	conv.Counters["figure"] = &counterInfo{}
	conv.Envs["equation"] = &environment{
		Prefix:  "Equation",
		Counter: "equation",
		Math:    true,
	}
	conv.Envs["figure"] = &environment{
		Tag:     "figure",
		Prefix:  "Figure",
		Counter: "figure",
	}
	conv.Envs["itemize"] = &environment{Tag: "ul"}
	conv.Envs["enumerate"] = &environment{Tag: "ol"}
	conv.Envs["description"] = &environment{Tag: "dl"}
	conv.Envs["quote"] = &environment{Tag: "blockquote"}
	conv.Envs["center"] = &environment{CSSClasses: []string{cssPrefix + "center"}}
}

var articleLevels = map[string]int{
	"section":       1,
	"subsection":    2,
	"subsubsection": 3,
}

var bookLevels = map[string]int{
	"chapter":       1,
	"section":       2,
	"subsection":    3,
	"subsubsection": 4,
}

func dHelpAuthor(args []*tokenizer.Arg, conv *converter) error {
	conv.Author = args[0].Value
	return nil
}

func dHelpTitle(args []*tokenizer.Arg, conv *converter) error {
	conv.Title = args[0].Value
	return nil
}

func dDocumentclass(args []*tokenizer.Arg, conv *converter) error {
	class := args[1].String()
	switch class {
	case "report", "book", "texhelp":
		conv.Levels = bookLevels
		conv.Counters["equation"].Parent = "chapter"
		conv.Counters["figure"].Parent = "chapter"
	default:
		conv.Levels = articleLevels
	}
	if class == "texhelp" {
		conv.usePackage("texhelp", args[0].String())
	}
	return nil
}

func dUsePackage(args []*tokenizer.Arg, conv *converter) error {
	conv.usePackage(args[1].String(), args[0].String())
	return nil
}

func (conv *converter) usePackage(pkgName, options string) {
	if conv.Packages[pkgName] {
		return
	}
	conv.Packages[pkgName] = true
	installFn := pkgInit[pkgName]
	if installFn != nil {
		installFn(conv, options)
	} else {
		log.Printf("unknown package %q (options %q)", pkgName, options)
	}
}

func mRef(args []*tokenizer.Arg, conv *converter) (string, error) {
	target := args[0].String()
	label := conv.findLabel(target)
	if label == nil {
		log.Printf("%s: undefined reference %q", conv.Loc, target)
		return `<span class="error">` + html.EscapeString(target) + `</span>`, nil
	}
	text := label.Name
	if text == "" {
		text = "\u2197"
	}
	return `<a href="` + label.Href() + `">` + text + `</a>`, nil
}

func indexID(n int) string {
	return "idx-" + strconv.Itoa(n)
}

func mIndex(args []*tokenizer.Arg, conv *converter) (string, error) {
	if conv.detached > 0 {
		return "", nil
	}
	conv.indexCount++
	return `<span id="` + indexID(conv.indexCount) + `" class="` +
		cssPrefix + `index"></span>`, nil
}

// indexTitle converts the argument of \index, e.g. "sort@term!sub",
// into a readable form.
func indexTitle(term string) string {
	var parts []string
	for _, part := range strings.Split(term, "!") {
		if k := strings.IndexByte(part, '@'); k >= 0 {
			part = part[k+1:]
		}
		if k := strings.IndexByte(part, '|'); k >= 0 {
			part = part[:k]
		}
		parts = append(parts, strings.TrimSpace(part))
	}
	return strings.Join(parts, ", ")
}

func mCaption(args []*tokenizer.Arg, conv *converter) (string, error) {
	text, err := conv.convertHTML(args[1].Value)
	if err != nil {
		return "", err
	}
	if env := conv.currentFloat(); env != nil {
		num := conv.Counters[env.Counter].String()
		text = `<span class="` + cssPrefix + `caption-label">` + env.Prefix +
			noBreakSpace + num + ":</span> " + text
	}
	return "<figcaption>" + text + "</figcaption>", nil
}

// currentFloat returns the innermost enclosing figure environment.
func (conv *converter) currentFloat() *environment {
	for i := len(conv.EnvStack) - 1; i >= 0; i-- {
		env := conv.Envs[conv.EnvStack[i]]
		if env != nil && env.Tag == "figure" && env.Counter != "" {
			return env
		}
	}
	return nil
}

func mTableOfContents(args []*tokenizer.Arg, conv *converter) (string, error) {
	res := []string{`<nav class="` + cssPrefix + `toc">`, "<ul>"}
	for _, sec := range conv.Sections {
		title, err := conv.convertDetached(sec.Title)
		if err != nil {
			return "", err
		}
		if sec.Number != "" {
			title = sec.Number + " " + title
		}
		res = append(res, `<li class="`+cssPrefix+`toc`+strconv.Itoa(sec.Level)+
			`"><a href="`+sec.Page+"#"+conv.sectionID(sec.Pos)+`">`+
			title+"</a></li>")
	}
	res = append(res, "</ul>", "</nav>")
	return strings.Join(res, "\n"), nil
}

func mVerb(args []*tokenizer.Arg, conv *converter) (string, error) {
	return "<code>" + html.EscapeString(args[0].String()) + "</code>", nil
}

func mVerbatim(args []*tokenizer.Arg, conv *converter) (string, error) {
	return `<pre class="` + cssPrefix + `verbatim">` +
		html.EscapeString(args[1].String()) + "</pre>", nil
}

func mArg(args []*tokenizer.Arg, conv *converter) (string, error) {
	return conv.convertHTML(args[0].Value)
}

func mToday(args []*tokenizer.Arg, conv *converter) (string, error) {
	return time.Now().Format("2 January 2006"), nil
}

type mIgnoreClass struct{}

func (m mIgnoreClass) HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error) {
	return "", nil
}

var mIgnore = mIgnoreClass{}

type mSubst string

func (m mSubst) HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error) {
	return string(m), nil
}

// mHTMLTag wraps the converted first argument in an HTML element.
// The string gives the contents of the start tag.
type mHTMLTag string

func (m mHTMLTag) HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error) {
	body, err := conv.convertHTML(args[0].Value)
	if err != nil {
		return "", err
	}
	startTag := "<" + string(m) + ">"
	endTag := "</" + strings.Fields(string(m))[0] + ">"
	return startTag + body + endTag, nil
}

type funcMacro func(args []*tokenizer.Arg, conv *converter) (string, error)

func (m funcMacro) HTMLOutput(args []*tokenizer.Arg, conv *converter) (string, error) {
	return m(args, conv)
}
