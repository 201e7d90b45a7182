// Package codeblock pulls fenced code out of model responses and decides which
// block is the original code and which is the fix.
package codeblock

import (
	"iter"
	"regexp"
	"strings"
)

const fence = "```"

// CodeBlock is a single fenced region found in a response.
type CodeBlock struct {
	Language string // tag written right after the opening fence, may be empty
	Body     string // fence interior with surrounding whitespace removed
	Offset   int    // byte offset of the opening fence in the source text
}

var fenceRe = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)```")

// Extract returns the fenced blocks of text in document order.
// Blocks are produced on demand; stopping the iteration early stops the scan.
func Extract(text string) iter.Seq[CodeBlock] {
	return func(yield func(CodeBlock) bool) {
		pos := 0
		for pos < len(text) {
			loc := fenceRe.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			block := CodeBlock{
				Body:   strings.TrimSpace(text[pos+loc[4] : pos+loc[5]]),
				Offset: pos + loc[0],
			}
			if loc[2] >= 0 {
				block.Language = text[pos+loc[2] : pos+loc[3]]
			}
			if !yield(block) {
				return
			}
			pos += loc[1]
		}
	}
}

// Blocks collects Extract into a slice.
func Blocks(text string) []CodeBlock {
	var blocks []CodeBlock
	for b := range Extract(text) {
		blocks = append(blocks, b)
	}
	return blocks
}

var fixedCodeCommentRe = regexp.MustCompile(`(?i)^(?://|#)[^\n]*fixed code[^\n]*(?:\n|$)`)

// Clean drops a leading "// fixed code" or "# fixed code" comment line.
func Clean(code string) string {
	loc := fixedCodeCommentRe.FindStringIndex(code)
	if loc == nil {
		return code
	}
	return code[loc[1]:]
}

var diffLineRe = regexp.MustCompile(`(?m)^[+-]\s`)

// IsDiff reports whether text looks like a unified diff.
func IsDiff(text string) bool {
	return strings.Contains(text, "diff --git") || diffLineRe.MatchString(text)
}
