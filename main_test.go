// main_test.go - tests for the command line settings
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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, input, err := parseConfig([]string{"dir/manual.tex"})
	if err != nil {
		t.Fatal(err)
	}
	if input != "dir/manual.tex" {
		t.Errorf("wrong input %q", input)
	}
	expected := &config{
		Output:     "manual-help",
		Format:     "dir",
		Language:   "en",
		SplitLevel: 1,
		IconDir:    "icons",
	}
	if d := cmp.Diff(expected, cfg); d != "" {
		t.Error(d)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("TEXHELP_FORMAT", "zip")
	t.Setenv("TEXHELP_LANG", "de")
	t.Setenv("TEXHELP_SPLIT_LEVEL", "2")
	t.Setenv("TEXHELP_SEARCH_DB", "true")

	cfg, _, err := parseConfig([]string{"-lang", "fr", "manual.tex"})
	if err != nil {
		t.Fatal(err)
	}
	expected := &config{
		Output:     "manual.zip",
		Format:     "zip",
		Language:   "fr",
		SplitLevel: 2,
		IconDir:    "icons",
		SearchDB:   true,
	}
	if d := cmp.Diff(expected, cfg); d != "" {
		t.Error(d)
	}
}

func TestParseConfigErrors(t *testing.T) {
	_, _, err := parseConfig(nil)
	if err != errUsage {
		t.Errorf("missing input: got %v", err)
	}
	_, _, err = parseConfig([]string{"-format", "pdf", "a.tex"})
	if err == nil {
		t.Error("invalid format accepted")
	}
	t.Setenv("TEXHELP_SPLIT_LEVEL", "many")
	_, _, err = parseConfig([]string{"a.tex"})
	if err == nil {
		t.Error("invalid environment accepted")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.tex")
	src := `\documentclass{texhelp}
\begin{document}
\chapter{Hello}
Some text.
\end{document}
`
	err := os.WriteFile(input, []byte(src), 0644)
	if err != nil {
		t.Fatal(err)
	}
	stop := filepath.Join(dir, "stop.txt")
	err = os.WriteFile(stop, []byte("# extra\nsome\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	cfg := &config{
		Output:     out,
		Format:     "dir",
		Language:   "en",
		SplitLevel: 1,
		StopWords:  stop,
		SearchDB:   true,
	}
	err = run(cfg, input)
	if err != nil {
		t.Fatal(err)
	}

	body, err := os.ReadFile(filepath.Join(out, "search.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `<word text="text">`) {
		t.Error("word missing from search index")
	}
	if strings.Contains(string(body), `<word text="some">`) {
		t.Error("stop-word in search index")
	}
	_, err = os.Stat(filepath.Join(out, "search.db"))
	if err != nil {
		t.Error(err)
	}
}

func TestRunFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.tex")
	src := `\documentclass{texhelp}
\begin{document}
\chapter{Hello}
See \gls{missing}.
\end{document}
`
	err := os.WriteFile(input, []byte(src), 0644)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	cfg := &config{
		Output:     out,
		Format:     "dir",
		Language:   "en",
		SplitLevel: 1,
	}
	err = run(cfg, input)
	if err == nil {
		t.Fatal("undefined glossary entry not detected")
	}
	_, err = os.Stat(filepath.Join(out, "navigation.xml"))
	if !os.IsNotExist(err) {
		t.Errorf("navigation written after failed conversion: %v", err)
	}

	zipName := filepath.Join(dir, "out.zip")
	cfg.Output = zipName
	cfg.Format = "zip"
	err = run(cfg, input)
	if err == nil {
		t.Fatal("undefined glossary entry not detected")
	}
	_, err = os.Stat(zipName)
	if !os.IsNotExist(err) {
		t.Errorf("partial zip file left behind: %v", err)
	}
}
