// Package redact masks secrets in source text before it leaves the machine and puts
// them back into text that comes back.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

const placeholderPrefix = "[REDACTED-"

var patterns []*regexp.Regexp

func init() {
	raw := []string{
		// AWS access key IDs
		`AKIA[0-9A-Z]{16}`,
		// AWS secret access keys
		`(?i)(aws_secret_access_key|aws_secret)\s*[:=]\s*[A-Za-z0-9/+=]{40}`,
		// Private key blocks
		`-----BEGIN [A-Z ]+PRIVATE KEY-----[\s\S]*?-----END [A-Z ]+PRIVATE KEY-----`,
		// Bearer tokens
		`Bearer\s+[A-Za-z0-9\-._~+/]+=*`,
		// sk- style API keys in string literals
		`\bsk-[A-Za-z0-9_\-]{16,}`,
		// Generic key/secret/token/password assignments
		`(?i)(api[_-]?key|api[_-]?secret|secret[_-]?key|token|password|passwd|credentials)\s*[:=]\s*\S+`,
	}
	for _, r := range raw {
		patterns = append(patterns, regexp.MustCompile(r))
	}
}

// Vault remembers the secrets removed by Redact.
type Vault struct {
	secrets []string
	index   map[string]int
}

// Len returns the number of distinct secrets held.
func (v *Vault) Len() int { return len(v.secrets) }

// Restore replaces every placeholder in text with the secret it stands for.
// Placeholders the vault does not know are left alone.
func (v *Vault) Restore(text string) string {
	if v == nil || len(v.secrets) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(v.secrets))
	for i, s := range v.secrets {
		pairs = append(pairs, placeholder(i), s)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func (v *Vault) add(secret string) string {
	if i, ok := v.index[secret]; ok {
		return placeholder(i)
	}
	v.index[secret] = len(v.secrets)
	v.secrets = append(v.secrets, secret)
	return placeholder(len(v.secrets) - 1)
}

func placeholder(i int) string {
	return fmt.Sprintf("%s%d]", placeholderPrefix, i+1)
}

// Redact replaces secret patterns in text with numbered placeholders. Identical secrets
// share a placeholder.
func Redact(text string) (string, *Vault) {
	v := &Vault{index: make(map[string]int)}
	for _, p := range patterns {
		text = p.ReplaceAllStringFunc(text, func(m string) string {
			if strings.Contains(m, placeholderPrefix) {
				return m
			}
			return v.add(m)
		})
	}
	return text, v
}
