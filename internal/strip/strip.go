package strip

import (
	"sort"
	"strings"
)

// Result is the outcome of RemoveLogs.
type Result struct {
	Text    string
	Count   int
	ByKind  map[Kind]int
	ByLevel map[Level]int
}

// RemoveLogs deletes every log statement from text and reports how many were removed.
//
// Patterns are applied in order, each to the output of the previous one, and the whole
// list is re-applied until a pass removes nothing. Every removed span is counted once.
func RemoveLogs(text string) Result {
	res := Result{
		Text:    text,
		ByKind:  make(map[Kind]int),
		ByLevel: make(map[Level]int),
	}
	for {
		removed := 0
		for _, p := range patterns {
			matches := p.re.FindAllStringSubmatchIndex(res.Text, -1)
			if len(matches) == 0 {
				continue
			}
			for _, m := range matches {
				res.ByKind[p.Kind]++
				res.ByLevel[Level(res.Text[m[2]:m[3]])]++
			}
			removed += len(matches)
			res.Text = p.re.ReplaceAllLiteralString(res.Text, "")
		}
		if removed == 0 {
			return res
		}
		res.Count += removed
	}
}

// Match is a log statement located in unmodified text.
type Match struct {
	Offset int
	Line   int
	Column int
	Level  Level
	Kind   Kind
	Text   string
}

// Find reports the log statements in text without changing it. Spans claimed by an
// earlier pattern are not reported again by a later one.
//
// Find makes a single pass over the unmodified text. A statement that only forms once
// a removal joins the surrounding fragments, as in "console.loconsole.log(a)g(b);",
// is counted by RemoveLogs but not reported here.
func Find(text string) []Match {
	var (
		found   []Match
		claimed [][2]int
	)
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if overlaps(claimed, m[0], m[1]) {
				continue
			}
			claimed = append(claimed, [2]int{m[0], m[1]})
			line, col := position(text, m[0])
			found = append(found, Match{
				Offset: m[0],
				Line:   line,
				Column: col,
				Level:  Level(text[m[2]:m[3]]),
				Kind:   p.Kind,
				Text:   strings.TrimSpace(text[m[0]:m[1]]),
			})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Offset < found[j].Offset })
	return found
}

// HasLogStatement reports whether a single line contains a log statement.
func HasLogStatement(line string) bool {
	for _, p := range patterns {
		if p.re.MatchString(line) {
			return true
		}
	}
	return false
}

// Statements returns every statement-shape match (terminator optional) in text.
func Statements(text string) []string {
	return statement.FindAllString(text, -1)
}

func overlaps(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && s[0] < end {
			return true
		}
	}
	return false
}

// position converts a byte offset to a 1-based line and column.
func position(text string, offset int) (int, int) {
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}
