// Package redact removes secrets from code before it leaves the machine.
package redact

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"
	"github.com/devcompass/compass-cli/theme"
)

const Placeholder = "<redacted>"

var secretPatterns = []*regexp.Regexp{
	// provider keys
	regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}\b`),
	regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`),
	regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`),
	regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`),
	regexp.MustCompile(`\bxox[abprs]-[A-Za-z0-9-]{10,}\b`),
	regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----(?s:.*?)-----END [A-Z ]*PRIVATE KEY-----`),
}

// assignments like password = "hunter2" keep the name and lose the value
var assignmentRe = regexp.MustCompile(`(?i)((?:password|passwd|secret|token|api_?key)\w*["']?\s*[:=]\s*)(["'])[^"'\n]+(["'])`)

// Secrets replaces well known credential formats in code with Placeholder.
// It returns the redacted code and the number of replacements.
func Secrets(code string) (string, int) {
	n := 0
	for _, re := range secretPatterns {
		code = re.ReplaceAllStringFunc(code, func(string) string {
			n++
			return Placeholder
		})
	}
	code = assignmentRe.ReplaceAllStringFunc(code, func(m string) string {
		n++
		sub := assignmentRe.FindStringSubmatch(m)
		return sub[1] + sub[2] + Placeholder + sub[3]
	})
	return code, n
}

// Code lets the user review and edit code before it is sent to the model.
// Secrets are masked before the code is shown.
func Code(code string) (string, error) {
	redacted, _ := Secrets(code)

	description := "Replace sensitive data with <placeholders>. Known secret formats are already masked."
	note := huh.NewNote().Title("Redact Secrets and PII").Description(description)
	text := huh.NewText().Value(&redacted).Lines(15)

	customTheme := theme.New()
	group := huh.NewGroup(note, text).Title("Redact Code").WithTheme(customTheme)
	if err := huh.NewForm(group).WithTheme(customTheme).Run(); err != nil {
		return "", fmt.Errorf("failed to run redaction form: %w", err)
	}
	return redacted, nil
}
