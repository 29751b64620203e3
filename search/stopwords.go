// stopwords.go -
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

package search

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/language"
)

var stopWordLanguages = []language.Tag{
	language.English,
	language.German,
	language.French,
}

var stopWordMatcher = language.NewMatcher(stopWordLanguages)

var builtinStopWords = map[language.Tag]string{
	language.English: `a about an and are as at be but by can do does for from
		has have how i if in into is it its may must not of on or so such
		than that the their them then there these they this to was we
		were what when where which who will with you your`,
	language.German: `aber als am an auch auf aus bei bin bis da das dass dem
		den der des die doch du ein eine einem einen einer eines er es für
		hat ich ihr im in ist ja kann mit nach nicht noch nur ob oder sich
		sie sind so über um und uns von vor war was wenn wie wir wird zu
		zum zur`,
	language.French: `à au aux avec ce ces dans de des du elle en et eux il
		je la le les leur lui ma mais me même mes moi mon ne nos notre nous
		on ou par pas pour qu que qui sa se ses son sur ta te tes toi ton tu
		un une vos votre vous`,
}

// StopWords returns the built-in stop-word list which best matches
// the given language.  If no list matches, the result is empty.
func StopWords(lang language.Tag) map[string]bool {
	_, idx, conf := stopWordMatcher.Match(lang)
	res := make(map[string]bool)
	if conf == language.No {
		return res
	}
	for _, w := range strings.Fields(builtinStopWords[stopWordLanguages[idx]]) {
		res[w] = true
	}
	return res
}

// ReadStopWords reads a list of stop-words, one word per line.  Empty
// lines and lines starting with "#" are ignored.
func ReadStopWords(r io.Reader) ([]string, error) {
	var res []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, line)
	}
	return res, scanner.Err()
}
