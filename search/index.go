// index.go - positional word index for help sets
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

// Package search builds the full-text search index of a help set.
//
// Text is split into words at Unicode word boundaries, words are
// normalised and converted to lower case using the rules of the help
// set's language, and stop-words are dropped.  For every remaining
// word, the index records the context (a page, optionally followed by
// "#" and an anchor ID) and the position of the word inside the text
// of this context.
package search

import (
	"encoding/xml"
	"io"
	"sort"

	"golang.org/x/text/language"
)

// Record describes one occurrence of a word.
type Record struct {
	Word    string
	Context string
	Pos     int
}

// Index collects the word occurrences of a help set.
type Index struct {
	Lang language.Tag

	splitter  *Splitter
	stopWords map[string]bool
	records   []Record
}

// NewIndex creates a new, empty index for text in the given language.
// The built-in stop-word list for the language is used.
func NewIndex(lang language.Tag) *Index {
	return &Index{
		Lang:      lang,
		splitter:  NewSplitter(lang),
		stopWords: StopWords(lang),
	}
}

// AddStopWords adds words to the stop-word list of the index.
func (idx *Index) AddStopWords(words ...string) {
	for _, w := range words {
		for _, word := range idx.splitter.Words(w) {
			idx.stopWords[word.Text] = true
		}
	}
}

// IsStopWord reports whether the (normalised) word is ignored by the
// index.
func (idx *Index) IsStopWord(word string) bool {
	return idx.stopWords[word]
}

// Add indexes the words of text under the given context.  Positions
// are counted in runes from the start of text; stop-words are not
// recorded but still count for the positions.  The return value is
// the number of records added.
func (idx *Index) Add(context, text string) int {
	n := 0
	for _, word := range idx.splitter.Words(text) {
		if idx.IsStopWord(word.Text) {
			continue
		}
		idx.records = append(idx.records, Record{
			Word:    word.Text,
			Context: context,
			Pos:     word.Pos,
		})
		n++
	}
	return n
}

// Records returns all occurrences recorded so far, in the order they
// were added.
func (idx *Index) Records() []Record {
	return idx.records
}

type xmlRef struct {
	Target string `xml:"target,attr"`
	Pos    int    `xml:"pos,attr"`
}

type xmlWord struct {
	Text string   `xml:"text,attr"`
	Refs []xmlRef `xml:"ref"`
}

type xmlSearch struct {
	XMLName xml.Name  `xml:"search"`
	ID      string    `xml:"id,attr,omitempty"`
	Lang    string    `xml:"lang,attr"`
	Words   []xmlWord `xml:"word"`
}

// WriteXML writes the index in XML format.  Words are listed in
// lexicographic order, the references for each word are given in
// document order.  The given id identifies the help set.
func (idx *Index) WriteXML(w io.Writer, id string) error {
	byWord := make(map[string][]xmlRef)
	for _, rec := range idx.records {
		byWord[rec.Word] = append(byWord[rec.Word],
			xmlRef{Target: rec.Context, Pos: rec.Pos})
	}
	words := make([]string, 0, len(byWord))
	for word := range byWord {
		words = append(words, word)
	}
	sort.Strings(words)

	doc := &xmlSearch{
		ID:   id,
		Lang: idx.Lang.String(),
	}
	for _, word := range words {
		doc.Words = append(doc.Words, xmlWord{Text: word, Refs: byWord[word]})
	}

	_, err := io.WriteString(w, xml.Header)
	if err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	err = enc.Encode(doc)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
