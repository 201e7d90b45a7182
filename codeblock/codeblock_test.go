package codeblock_test

import (
	"testing"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Run("DocumentOrder", func(t *testing.T) {
		text := "intro\n```go\na()\n```\nmid\n```\n b() \n```"
		got := codeblock.Blocks(text)
		assert.Equal(t, []codeblock.CodeBlock{
			{Language: "go", Body: "a()", Offset: 6},
			{Body: "b()", Offset: 24},
		}, got)
	})
	t.Run("TagIsNotValidated", func(t *testing.T) {
		got := codeblock.Blocks("```not_a_language42\nx\n```")
		assert.Equal(t, []codeblock.CodeBlock{{Language: "not_a_language42", Body: "x"}}, got)
	})
	t.Run("NonGreedy", func(t *testing.T) {
		got := codeblock.Blocks("```\none\n```\n```\ntwo\n```")
		if assert.Len(t, got, 2) {
			assert.Equal(t, "one", got[0].Body)
			assert.Equal(t, "two", got[1].Body)
		}
	})
	t.Run("UnterminatedYieldsNothing", func(t *testing.T) {
		assert.Empty(t, codeblock.Blocks("```go\nfunc main() {}\n"))
	})
	t.Run("StopsEarly", func(t *testing.T) {
		var seen int
		for range codeblock.Extract("```\na\n```\n```\nb\n```\n```\nc\n```") {
			seen++
			if seen == 2 {
				break
			}
		}
		assert.Equal(t, 2, seen)
	})
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "slash comment",
			input:    "// fixed code\nfunc a() {}\n\treturn\n",
			expected: "func a() {}\n\treturn\n",
		},
		{
			name:     "hash comment mixed case",
			input:    "# Fixed Code:\nprint(1)",
			expected: "print(1)",
		},
		{
			name:     "only the comment line",
			input:    "// fixed code",
			expected: "",
		},
		{
			name:     "only first line is considered",
			input:    "x := 1\n// fixed code\n",
			expected: "x := 1\n// fixed code\n",
		},
		{
			name:     "other comments untouched",
			input:    "// helper\nfunc a() {}",
			expected: "// helper\nfunc a() {}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, codeblock.Clean(tc.input))
		})
	}
}

func TestIsDiff(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "git header", input: "diff --git a/x b/x", expected: true},
		{name: "added line", input: "context\n+ added", expected: true},
		{name: "removed line", input: "- removed\ncontext", expected: true},
		{name: "double plus", input: "++i;\n--j;", expected: false},
		{name: "plain code", input: "a := b - c", expected: false},
		{name: "empty", input: "", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, codeblock.IsDiff(tc.input))
		})
	}
}
