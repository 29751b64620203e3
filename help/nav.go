// nav.go - navigation tree and target index
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
	"encoding/xml"
	"io"
)

// NavEntry describes one section in the navigation tree.
type NavEntry struct {
	Level  int
	Number string
	Title  string
	Path   string
	ID     string
}

// Target returns the link target of the section.
func (e *NavEntry) Target() string {
	return e.Path + "#" + e.ID
}

type xmlNode struct {
	Title  string     `xml:"title,attr"`
	Number string     `xml:"number,attr,omitempty"`
	Target string     `xml:"target,attr"`
	Nodes  []*xmlNode `xml:"node"`
}

type xmlNavigation struct {
	XMLName xml.Name   `xml:"navigation"`
	ID      string     `xml:"id,attr"`
	Lang    string     `xml:"lang,attr"`
	Title   string     `xml:"title,attr,omitempty"`
	Start   string     `xml:"start,attr,omitempty"`
	Nodes   []*xmlNode `xml:"node"`
}

type xmlTarget struct {
	Key    string `xml:"key,attr"`
	Page   string `xml:"page,attr"`
	Anchor string `xml:"anchor,attr,omitempty"`
	Type   string `xml:"type,attr"`
	Title  string `xml:"title,attr,omitempty"`
}

type xmlIndex struct {
	XMLName xml.Name    `xml:"index"`
	ID      string      `xml:"id,attr"`
	Targets []xmlTarget `xml:"target"`
}

// navigation converts the flat list of sections into a tree.  A
// section becomes a child of the closest preceding section with a
// lower level.
func (w *book) navigation() *xmlNavigation {
	root := &xmlNavigation{
		ID:    w.UUID.String(),
		Lang:  w.Language,
		Title: w.Title,
		Start: w.TitlePath,
	}
	if root.Start == "" && len(w.Pages) > 0 {
		root.Start = w.Pages[0].Path
	}

	type frame struct {
		level int
		nodes *[]*xmlNode
	}
	stack := []frame{{0, &root.Nodes}}
	for _, e := range w.Nav {
		for len(stack) > 1 && stack[len(stack)-1].level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		node := &xmlNode{
			Title:  e.Title,
			Number: e.Number,
			Target: e.Target(),
		}
		parent := stack[len(stack)-1].nodes
		*parent = append(*parent, node)
		stack = append(stack, frame{e.Level, &node.Nodes})
	}
	return root
}

func (w *book) targetIndex() *xmlIndex {
	res := &xmlIndex{
		ID: w.UUID.String(),
	}
	for _, t := range w.Targets {
		res.Targets = append(res.Targets, xmlTarget{
			Key:    t.Key,
			Page:   t.Page,
			Anchor: t.Anchor,
			Type:   t.Type,
			Title:  t.Title,
		})
	}
	return res
}

func writeXML(out io.Writer, v interface{}) error {
	_, err := io.WriteString(out, xml.Header)
	if err != nil {
		return err
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	err = enc.Encode(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}

func (w *book) writeXMLFile(path string, v interface{}) error {
	out, err := w.driver.Create(path)
	if err != nil {
		return err
	}
	return mergeErrors(writeXML(out, v), out.Close())
}
