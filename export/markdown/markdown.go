package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/atotto/clipboard"
	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/storage"
)

const MdTemplate = `# {{ title .Kind }}{{ if .Model }} ({{ .Model }}){{ end }}

_{{ .CreatedAt.Format "2006-01-02 15:04:05" }}_

## Prompt

{{ .Prompt }}

## Response
{{ with .Parsed }}{{ if .HasCodeBlocks }}
{{ if .Explanation }}{{ .Explanation }}
{{ end }}{{ if .OriginalCode }}
### Original code

{{ fence .Language }}
{{ .OriginalCode }}
` + "```" + `
{{ end }}{{ if .FixedCode }}
### Fixed code

{{ fence .Language }}
{{ clean .FixedCode }}
` + "```" + `
{{ end }}{{ else }}
{{ $.Response }}
{{ end }}{{ else }}
{{ .Response }}
{{ end }}`

type Service interface {
	// ToMarkdownFile writes the entry to a new markdown file and returns its path.
	ToMarkdownFile(ctx context.Context, entry *storage.Entry) (string, error)
	Render(w io.Writer, entry *storage.Entry) error
}

var mdTemplate *template.Template

func init() {
	mdTemplate = template.Must(template.New("md").Funcs(template.FuncMap{
		"fence": func(lang string) string {
			return "```" + lang
		},
		"clean": func(code string) string {
			return strings.TrimRight(codeblock.Clean(code), "\n")
		},
		"title": func(kind storage.Kind) string {
			switch kind {
			case storage.KindFix:
				return "Code fix"
			case storage.KindLearn:
				return "Learning path"
			default:
				return "Chat"
			}
		},
	}).Parse(MdTemplate))
}

type svc struct {
	dir          string
	useClipboard bool
	now          func() time.Time
}

// NewService returns a Service writing files into dir. When useClipboard is
// set the fixed code of exported entries is copied to the clipboard.
func NewService(dir string, useClipboard bool) Service {
	return &svc{
		dir:          dir,
		useClipboard: useClipboard,
		now:          time.Now,
	}
}

func (s *svc) Render(w io.Writer, entry *storage.Entry) error {
	if err := mdTemplate.Execute(w, entry); err != nil {
		return fmt.Errorf("error executing markdown template: %w", err)
	}
	return nil
}

func (s *svc) ToMarkdownFile(ctx context.Context, entry *storage.Entry) (string, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf, entry); err != nil {
		return "", err
	}

	humanReadableTime := s.now().Format("2006_01_02_15_04_05")
	fileName := filepath.Join(s.dir, fmt.Sprintf("compass_%s.md", humanReadableTime))
	if err := os.WriteFile(fileName, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}

	if s.useClipboard && entry.Parsed != nil && entry.Parsed.FixedCode != "" {
		if err := CopyCode(entry.Parsed.FixedCode); err != nil {
			return fileName, err
		}
	}
	return fileName, nil
}

// CopyCode puts code on the system clipboard without a leading
// "fixed code" comment.
func CopyCode(code string) error {
	if err := clipboard.WriteAll(codeblock.Clean(code)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
