// Package strip finds and removes console logging statements from source text.
//
// Matching is purely textual: a call is recognised as console.<level>( ... ) where the
// argument list contains no ')' character. Arguments holding nested calls or parenthesised
// expressions are cut at the first ')'.
package strip

import "regexp"

// Level is one of the console log-level identifiers.
type Level string

const (
	LevelLog   Level = "log"
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

func (l Level) Valid() bool {
	switch l {
	case LevelLog, LevelError, LevelWarn, LevelInfo, LevelDebug:
		return true
	}
	return false
}

// PreserveMarker is the call form that is always kept by model-assisted removal.
const PreserveMarker = "console.error"

// Kind names the lexical shape a pattern recognises.
type Kind string

const (
	KindStatement    Kind = "STATEMENT"
	KindBareCall     Kind = "BARE_CALL"
	KindLineComment  Kind = "LINE_COMMENT"
	KindBlockComment Kind = "BLOCK_COMMENT"
)

func (k Kind) Valid() bool {
	switch k {
	case KindStatement, KindBareCall, KindLineComment, KindBlockComment:
		return true
	}
	return false
}

// call matches console.<level>(args) with the level in group 1.
const call = `console\.(log|error|warn|info|debug)\s*\([^)]*\)`

// Pattern is one removal rule.
type Pattern struct {
	Kind Kind
	re   *regexp.Regexp
}

func (p Pattern) String() string { return p.re.String() }

var (
	// patterns is the evaluation order. Comment shapes run first so the
	// wrapper goes together with the call it contains.
	patterns []Pattern

	statement *regexp.Regexp
)

func init() {
	raw := []struct {
		kind Kind
		expr string
	}{
		// /* console.debug(x); */
		{KindBlockComment, `/\*\s*` + call + `;?\s*\*/`},
		// // console.log(x);
		{KindLineComment, `//\s*` + call + `;?\s*`},
		// console.log(x);
		{KindStatement, call + `;?\s*`},
		// console.log(x)
		{KindBareCall, call + `\s*`},
	}
	for _, r := range raw {
		p := Pattern{Kind: r.kind, re: regexp.MustCompile(r.expr)}
		if r.kind == KindStatement {
			statement = p.re
		}
		patterns = append(patterns, p)
	}
}

// Patterns returns the removal rules in evaluation order.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}
