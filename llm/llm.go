package llm

import (
	"bytes"
	"errors"
	"strings"
	"text/template"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/model"
)

// Prompt is a single request to a model.
// ModelType tells the caller how the response should be parsed.
type Prompt struct {
	System    string
	User      string
	ModelType codeblock.ModelType
}

var ErrEmptyInput = errors.New("empty input")

const (
	codeFixerSystemPrompt = `You are an expert software engineer who reviews and fixes code.

Explain the problem in a few short sentences first.
Then show the original code in a fenced code block introduced by the line "Original code:".
Then show the corrected code in a fenced code block introduced by the line "Fixed code:".
Tag both code blocks with the language name. Do not add any other code blocks.`

	generalSystemPrompt = `You are a helpful assistant for software developers.
Answer concisely and use markdown. Use fenced code blocks for code.`

	learningPathSystemPrompt = `You are a mentor who designs learning paths for software developers.
Answer in markdown only.`

	fixTemplateText = `Fix the following {{if .Language}}{{.Language}} {{end}}code{{if .FileName}} from {{.FileName}}{{end}}.
{{if .ErrorMessage}}
It fails with this error:
{{.ErrorMessage}}
{{end}}
{{fence .Language}}
{{.Code}}
` + "```"

	chatTemplateText = `{{if .PreviousQuestions}}Earlier in this conversation I asked:
{{range .PreviousQuestions}}- {{.}}
{{end}}
{{end}}{{.Question}}`

	learningPathTemplateText = `Create a learning path for "{{.Topic}}" aimed at a {{level .Level}} developer.

Split it into numbered stages. For every stage give:
- a short title
- what to learn, as a bullet list
- one small hands-on exercise
- an estimate of the time needed

Finish with a list of recommended resources.`
)

var (
	fixTemplate = template.Must(template.New("fix").Funcs(template.FuncMap{
		"fence": func(lang string) string {
			return "```" + lang
		},
	}).Parse(fixTemplateText))

	chatTemplate = template.Must(template.New("chat").Parse(chatTemplateText))

	learningPathTemplate = template.Must(template.New("learn").Funcs(template.FuncMap{
		"level": func(level string) string {
			if level == "" {
				return "beginner"
			}
			return level
		},
	}).Parse(learningPathTemplateText))
)

// FixPrompt builds a code-fixer prompt.
func FixPrompt(ci *model.CodeInfo) (*Prompt, error) {
	if ci == nil || strings.TrimSpace(ci.Code) == "" {
		return nil, ErrEmptyInput
	}
	user, err := execute(fixTemplate, ci)
	if err != nil {
		return nil, err
	}
	return &Prompt{
		System:    codeFixerSystemPrompt,
		User:      user,
		ModelType: codeblock.ModelTypeCodeFixer,
	}, nil
}

// ChatPrompt builds a general chat prompt.
func ChatPrompt(qi *model.QuestionInfo) (*Prompt, error) {
	if qi == nil || strings.TrimSpace(qi.Question) == "" {
		return nil, ErrEmptyInput
	}
	user, err := execute(chatTemplate, qi)
	if err != nil {
		return nil, err
	}
	return &Prompt{
		System:    generalSystemPrompt,
		User:      user,
		ModelType: codeblock.ModelTypeGeneral,
	}, nil
}

func LearningPathPrompt(li *model.LearningPathInfo) (*Prompt, error) {
	if li == nil || strings.TrimSpace(li.Topic) == "" {
		return nil, ErrEmptyInput
	}
	user, err := execute(learningPathTemplate, li)
	if err != nil {
		return nil, err
	}
	return &Prompt{
		System:    learningPathSystemPrompt,
		User:      user,
		ModelType: codeblock.ModelTypeGeneral,
	}, nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
