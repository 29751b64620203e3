// pkg-texhelp.go - menus, keys, icons and help messages
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
	"strings"
	"unicode/utf8"

	"github.com/seehuhn/texhelp/latex/tokenizer"
)

const menuSeparator = "▸"

func addTexhelpMacros(conv *converter, options string) {
	conv.usePackage("glossaries", "")
	conv.usePackage("graphicx", "")
	conv.usePackage("hyperref", "")

	conv.Macros["\\helpmsg"] = funcMacro(mHelpMsg)
	conv.Macros["\\icon"] = funcMacro(mIcon)
	conv.Macros["\\keys"] = funcMacro(mKeys)
	conv.Macros["\\menu"] = funcMacro(mMenu)
	conv.Macros["\\newhelpmsg"] = declaration(dNewHelpMsg)
	conv.Macros["\\shortcut"] = funcMacro(mShortcut)
}

// parentChain returns the labels of all ancestors of a glossary entry,
// starting from the root and ending with the entry itself.
func (conv *converter) parentChain(label string) ([]string, error) {
	var chain []string
	seen := make(map[string]bool)
	for label != "" && !seen[label] {
		seen[label] = true
		entry, err := conv.glsEntry(label)
		if err != nil {
			return nil, err
		}
		chain = append([]string{label}, chain...)
		label = entry.Parent
	}
	return chain, nil
}

// menuPath formats a sequence of menu items.  Every item is a
// glossary entry, shown with its icon if one is set.
func (conv *converter) menuPath(labels []string) (string, error) {
	var items []string
	for _, label := range labels {
		entry, err := conv.glsEntry(label)
		if err != nil {
			return "", err
		}
		name, err := conv.convertDetached(entry.field("name"))
		if err != nil {
			return "", err
		}
		if icon := entry.field("icon"); len(icon) > 0 {
			name = conv.iconHTML(icon.FormatText(), plainText(name)) + name
		}
		link, err := conv.glsLink(entry, name, true)
		if err != nil {
			return "", err
		}
		entry.used = true
		items = append(items, `<span class="menuitem">`+link+`</span>`)
	}
	sep := `<span class="menusep">` + menuSeparator + `</span>`
	return `<span class="menu">` + strings.Join(items, sep) + `</span>`, nil
}

// mMenu implements \menu{a,b,c}.  If only one label is given, the
// menu path is formed by the parents of the corresponding glossary
// entry.
func mMenu(args []*tokenizer.Arg, conv *converter) (string, error) {
	var labels []string
	for _, label := range strings.Split(args[0].String(), ",") {
		label = strings.TrimSpace(label)
		if label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) == 1 {
		var err error
		labels, err = conv.parentChain(labels[0])
		if err != nil {
			return "", err
		}
	}
	return conv.menuPath(labels)
}

func mShortcut(args []*tokenizer.Arg, conv *converter) (string, error) {
	label := strings.TrimSpace(args[0].String())
	entry, err := conv.glsEntry(label)
	if err != nil {
		return "", err
	}
	chain, err := conv.parentChain(label)
	if err != nil {
		return "", err
	}
	res, err := conv.menuPath(chain)
	if err != nil {
		return "", err
	}
	if keys := entry.field("shortcut"); len(keys) > 0 {
		res += " (" + formatKeys(keys.FormatText()) + ")"
	}
	return res, nil
}

var keyNames = map[string]string{
	"alt":       "Alt",
	"backspace": "Backspace",
	"cmd":       "⌘",
	"command":   "⌘",
	"control":   "Ctrl",
	"ctrl":      "Ctrl",
	"del":       "Delete",
	"delete":    "Delete",
	"down":      "↓",
	"end":       "End",
	"enter":     "Enter",
	"esc":       "Esc",
	"escape":    "Esc",
	"home":      "Home",
	"ins":       "Insert",
	"insert":    "Insert",
	"left":      "←",
	"meta":      "Meta",
	"pagedown":  "PgDn",
	"pageup":    "PgUp",
	"pgdn":      "PgDn",
	"pgup":      "PgUp",
	"return":    "Enter",
	"right":     "→",
	"shift":     "Shift",
	"space":     "Space",
	"tab":       "Tab",
	"up":        "↑",
}

func keyName(key string) string {
	if name, ok := keyNames[strings.ToLower(key)]; ok {
		return name
	}
	if utf8.RuneCountInString(key) == 1 || isFunctionKey(key) {
		return strings.ToUpper(key)
	}
	return key
}

func isFunctionKey(key string) bool {
	if len(key) < 2 || len(key) > 3 || (key[0] != 'f' && key[0] != 'F') {
		return false
	}
	for i := 1; i < len(key); i++ {
		if !isDigit(key[i]) {
			return false
		}
	}
	return true
}

// splitChord splits a key combination like "Ctrl+Shift+S" into the
// individual keys.  A "+" directly after a separator denotes the plus
// key, e.g. in "Ctrl++".
func splitChord(chord string) []string {
	var keys []string
	for len(chord) > 0 {
		k := strings.IndexByte(chord[1:], '+')
		if k < 0 {
			keys = append(keys, strings.TrimSpace(chord))
			break
		}
		keys = append(keys, strings.TrimSpace(chord[:k+1]))
		chord = chord[k+2:]
	}
	return keys
}

// formatKeys formats a sequence of key combinations, separated by
// commas.
func formatKeys(keys string) string {
	var chords []string
	for _, chord := range strings.Split(keys, ",") {
		chord = strings.TrimSpace(chord)
		if chord == "" {
			continue
		}
		var kbd []string
		for _, key := range splitChord(chord) {
			kbd = append(kbd, "<kbd>"+html.EscapeString(keyName(key))+"</kbd>")
		}
		chords = append(chords, strings.Join(kbd, "+"))
	}
	return `<span class="keys">` + strings.Join(chords, ", ") + `</span>`
}

func mKeys(args []*tokenizer.Arg, conv *converter) (string, error) {
	return formatKeys(args[0].String()), nil
}

func mIcon(args []*tokenizer.Arg, conv *converter) (string, error) {
	name := strings.TrimSpace(args[1].String())
	alt := name
	if len(args[0].Value) > 0 {
		s, err := conv.convertHTML(args[0].Value)
		if err != nil {
			return "", err
		}
		alt = plainText(s)
	}
	return conv.iconHTML(name, alt), nil
}

func dNewHelpMsg(args []*tokenizer.Arg, conv *converter) error {
	conv.Messages[strings.TrimSpace(args[0].String())] = args[1].Value
	return nil
}

func mHelpMsg(args []*tokenizer.Arg, conv *converter) (string, error) {
	key := strings.TrimSpace(args[0].String())
	tmpl, ok := conv.Messages[key]
	if !ok {
		return "", conv.syntaxError(MsgMessageUndefined, key)
	}
	var params []tokenizer.TokenList
	if len(args[1].Value) > 0 {
		params = args[1].Value.Split(",")
	}
	body, err := conv.convertDetached(substituteParams(tmpl, params))
	if err != nil {
		return "", err
	}
	return `<span class="helpmsg">` + body + `</span>`, nil
}

// substituteParams replaces the placeholders #1 to #9 in a message
// template by the given parameters.  Placeholders without a
// corresponding parameter are removed.
func substituteParams(tmpl tokenizer.TokenList, params []tokenizer.TokenList) tokenizer.TokenList {
	var res tokenizer.TokenList
	for i := 0; i < len(tmpl); i++ {
		tok := tmpl[i]
		if tok.Type == tokenizer.TokenOther && tok.Name == "#" && i+1 < len(tmpl) {
			next := tmpl[i+1]
			if next.Type == tokenizer.TokenOther && len(next.Name) == 1 &&
				next.Name[0] >= '1' && next.Name[0] <= '9' {
				k := int(next.Name[0] - '1')
				if k < len(params) {
					res = append(res, params[k]...)
				}
				i++
				continue
			}
		}
		if tok.Type == tokenizer.TokenMacro && len(tok.Args) > 0 {
			tok = &tokenizer.Token{
				Type: tok.Type,
				Name: tok.Name,
				Args: substituteArgs(tok.Args, params),
				Loc:  tok.Loc,
			}
		}
		res = append(res, tok)
	}
	return res
}

func substituteArgs(args []*tokenizer.Arg, params []tokenizer.TokenList) []*tokenizer.Arg {
	res := make([]*tokenizer.Arg, len(args))
	for i, arg := range args {
		newArg := &tokenizer.Arg{
			Optional: arg.Optional,
			Value:    substituteParams(arg.Value, params),
		}
		for _, f := range arg.Fields {
			newArg.Fields = append(newArg.Fields, &tokenizer.Field{
				Key:   f.Key,
				Value: substituteParams(f.Value, params),
			})
		}
		res[i] = newArg
	}
	return res
}

func init() {
	addPackage("texhelp", addTexhelpMacros)
}
