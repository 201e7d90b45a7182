package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/devcompass/compass-cli/codeblock"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultWrap = 100

// Markdown lays out a parsed response as a markdown document.
func Markdown(p *codeblock.ParsedCodeResponse) string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	if p.Explanation != "" {
		sb.WriteString(p.Explanation)
		sb.WriteString("\n\n")
	}
	if !p.HasCodeBlocks {
		if p.Explanation == "" {
			sb.WriteString("_The response did not contain any code._\n")
		}
		return sb.String()
	}

	if p.OriginalCode != "" {
		writeSection(&sb, "Original code", p.Language, p.OriginalCode)
	}
	if p.FixedCode != "" {
		fixed := codeblock.Clean(p.FixedCode)
		lang := p.Language
		if codeblock.IsDiff(fixed) {
			lang = "diff"
		}
		writeSection(&sb, "Fixed code", lang, fixed)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, title, lang, code string) {
	fmt.Fprintf(sb, "### %s\n\n```%s\n%s\n```\n\n", title, lang, strings.TrimRight(code, "\n"))
}

// Renderer prints markdown to a terminal with glamour, or as-is when the
// output is not a terminal.
type Renderer struct {
	out   io.Writer
	tr    *glamour.TermRenderer
	plain bool
}

// NewRenderer builds a renderer for out. style is a glamour style name;
// "auto" picks dark or light from the terminal background.
func NewRenderer(out io.Writer, style string) (*Renderer, error) {
	f, isFile := out.(*os.File)
	if !isFile || !term.IsTerminal(int(f.Fd())) || style == "notty" {
		return &Renderer{out: out, plain: true}, nil
	}

	width := defaultWrap
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(resolveStyle(style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{out: out, tr: tr}, nil
}

func resolveStyle(style string) string {
	switch style {
	case "dark", "light":
		return style
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func (r *Renderer) Render(md string) error {
	if r.plain {
		_, err := io.WriteString(r.out, md)
		return err
	}
	rendered, err := r.tr.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, rendered)
	return err
}

// Response renders a parsed response.
func (r *Renderer) Response(p *codeblock.ParsedCodeResponse) error {
	return r.Render(Markdown(p))
}
