// Package prompt builds the model prompts for log cleanup and review operations.
package prompt

import (
	"fmt"
	"strings"

	"github.com/dshills/logsweep/internal/profile"
)

// BuildOpts configures prompt construction.
type BuildOpts struct {
	Profile  *profile.Profile
	Code     string
	Language string
	FileName string
}

// Build assembles the full prompt for one operation.
func Build(opts BuildOpts) string {
	var b strings.Builder
	lang := opts.Language
	if lang == "" {
		lang = "plain text"
	}

	// 1. Task
	if opts.Profile != nil {
		b.WriteString(strings.TrimSpace(opts.Profile.Preamble))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Language: %s\n", lang)
	if opts.FileName != "" {
		fmt.Fprintf(&b, "File: %s\n", opts.FileName)
	}
	b.WriteString("\n")

	// 2. Focus points
	if opts.Profile != nil && len(opts.Profile.Focus) > 0 {
		b.WriteString("Consider:\n")
		b.WriteString(profile.FormatFocus(opts.Profile))
		b.WriteString("\n")
	}

	// 3. Code
	fence := Fence(opts.Code)
	fmt.Fprintf(&b, "Code:\n%s%s\n%s\n%s\n\n", fence, FenceTag(lang), opts.Code, fence)

	// 4. Expected answer
	if opts.Profile != nil && len(opts.Profile.Deliverables) > 0 {
		b.WriteString("Return:\n")
		b.WriteString(profile.FormatDeliverables(opts.Profile))
		b.WriteString("\n")
	}
	if opts.Profile != nil && opts.Profile.Closing != "" {
		b.WriteString(strings.TrimSpace(opts.Profile.Closing))
		b.WriteString("\n")
	}

	return b.String()
}

// Fence returns a backtick fence longer than any backtick run inside code.
func Fence(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// FenceTag converts a display language label into a fence info string.
func FenceTag(language string) string {
	tag := strings.ToLower(strings.Join(strings.Fields(language), ""))
	if tag == "plaintext" {
		return ""
	}
	return tag
}
