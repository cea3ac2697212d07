package llm

import (
	"regexp"
	"strings"
)

// fenceOpen matches an opening fence of three or more backticks. The language tag is
// optional and is only recognised when it is followed by a newline.
var fenceOpen = regexp.MustCompile("(`{3,})(?:[\\w+#-]*\\n)?")

// ExtractCodeBlock returns the trimmed body of the first fenced code block in text.
// The block ends at the first backtick run as long as the opening one, so a longer
// fence may hold shorter ones. ok is false when text contains no closed fence.
func ExtractCodeBlock(text string) (code string, ok bool) {
	loc := fenceOpen.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	fence := text[loc[2]:loc[3]]
	body := text[loc[1]:]
	end := strings.Index(body, fence)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(body[:end]), true
}
