// errors.go - syntax errors with localised messages
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
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnterminatedMath indicates the \end{...} tag for a LaTeX maths
// environment was not found.
var ErrUnterminatedMath = errors.New("maths environment not terminated")

// Message keys used in syntax errors.
const (
	MsgGlossaryEntryUndefined  = "glossary.entry.undefined"
	MsgGlossaryChildrenMissing = "glossary.children.missing"
	MsgMessageUndefined        = "message.undefined"
)

var messageLanguages = []language.Tag{
	language.English,
	language.German,
}

var messageMatcher = language.NewMatcher(messageLanguages)

func init() {
	for _, m := range []struct {
		tag       language.Tag
		key, text string
	}{
		{language.English, MsgGlossaryEntryUndefined, "glossary entry %q is not defined"},
		{language.English, MsgGlossaryChildrenMissing, "glossary entry %q has no children"},
		{language.English, MsgMessageUndefined, "help message %q is not defined"},
		{language.German, MsgGlossaryEntryUndefined, "Glossareintrag %q ist nicht definiert"},
		{language.German, MsgGlossaryChildrenMissing, "Glossareintrag %q hat keine Untereinträge"},
		{language.German, MsgMessageUndefined, "Hilfetext %q ist nicht definiert"},
	} {
		err := message.SetString(m.tag, m.key, m.text)
		if err != nil {
			panic(err)
		}
	}
}

// SyntaxError is returned when a document uses a command incorrectly.
type SyntaxError struct {
	// Key identifies the message, Args are the message arguments.
	Key  string
	Args []interface{}

	// Loc is the source location of the offending command.
	Loc string
}

func (err *SyntaxError) Error() string {
	return err.Localize(language.English)
}

// Localize formats the error message in the given language.  If no
// translation exists, English is used.
func (err *SyntaxError) Localize(lang language.Tag) string {
	_, idx, _ := messageMatcher.Match(lang)
	p := message.NewPrinter(messageLanguages[idx])
	msg := p.Sprintf(err.Key, err.Args...)
	if err.Loc != "" {
		msg = err.Loc + ": " + msg
	}
	return msg
}

func (conv *converter) syntaxError(key string, args ...interface{}) error {
	return &SyntaxError{
		Key:  key,
		Args: args,
		Loc:  conv.Loc,
	}
}

func mergeErrors(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
