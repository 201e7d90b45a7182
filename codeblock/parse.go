package codeblock

import (
	"regexp"
	"strings"
)

// ModelType selects how a response is interpreted.
type ModelType string

const (
	ModelTypeGeneral   ModelType = "general"
	ModelTypeCodeFixer ModelType = "code-fixer"
)

// ParsedCodeResponse is the structured view of a code-fixer response.
// Empty code fields mean the response did not provide them.
type ParsedCodeResponse struct {
	OriginalCode  string `json:"original_code,omitempty" yaml:"original_code,omitempty"`
	FixedCode     string `json:"fixed_code,omitempty" yaml:"fixed_code,omitempty"`
	Language      string `json:"language,omitempty" yaml:"language,omitempty"`
	Explanation   string `json:"explanation" yaml:"explanation"`
	HasCodeBlocks bool   `json:"has_code_blocks" yaml:"has_code_blocks"`
}

var (
	originalMarkerRe = regexp.MustCompile("(?is)(original|before|broken|buggy) code.*?```")
	fixedMarkerRe    = regexp.MustCompile("(?is)(fixed|corrected|after|solution) code.*?```")
	correctedRe      = regexp.MustCompile(`(?i)corrected`)
)

// Parse classifies text when mt is ModelTypeCodeFixer and returns nil for
// every other model type.
func Parse(text string, mt ModelType) *ParsedCodeResponse {
	if mt != ModelTypeCodeFixer {
		return nil
	}
	parsed := Classify(text)
	return &parsed
}

// Classify splits a response into original code, fixed code and the prose
// that precedes them. It never fails; text without usable fences comes back
// with HasCodeBlocks unset.
func Classify(text string) ParsedCodeResponse {
	blocks := Blocks(text)
	if len(blocks) == 0 {
		// a stray fence without a complete block is still prose
		return ParsedCodeResponse{Explanation: strings.TrimSpace(text)}
	}
	resp := ParsedCodeResponse{
		Explanation:   explanation(text),
		HasCodeBlocks: true,
	}

	switch {
	case hasMarkers(text):
		if len(blocks) == 1 {
			resp.OriginalCode = blocks[0].Body
			resp.Language = blocks[0].Language
			break
		}
		resp.OriginalCode, resp.FixedCode, resp.Language = pair(blocks[0], blocks[1])
	case len(blocks) == 2:
		resp.OriginalCode, resp.FixedCode, resp.Language = pair(blocks[0], blocks[1])
	case len(blocks) == 1:
		resp.FixedCode = blocks[0].Body
		resp.Language = blocks[0].Language
	default:
		if b, ok := pickFixed(text, blocks); ok {
			resp.FixedCode = b.Body
			resp.Language = b.Language
		}
	}
	return resp
}

func hasMarkers(text string) bool {
	return originalMarkerRe.MatchString(text) && fixedMarkerRe.MatchString(text)
}

func pair(original, fixed CodeBlock) (string, string, string) {
	lang := fixed.Language
	if lang == "" {
		lang = original.Language
	}
	return original.Body, fixed.Body, lang
}

// pickFixed chooses the fix among three or more blocks. Only the fixed side
// is inferred here.
func pickFixed(text string, blocks []CodeBlock) (CodeBlock, bool) {
	if loc := correctedRe.FindStringIndex(text); loc != nil {
		for _, b := range blocks {
			if b.Offset >= loc[0] {
				return b, true
			}
		}
		return CodeBlock{}, false
	}

	longest := blocks[0]
	for _, b := range blocks[1:] {
		if len(b.Body) > len(longest.Body) {
			longest = b
		}
	}
	return longest, true
}

// explanation is the prose before the first fence marker.
func explanation(text string) string {
	if idx := strings.Index(text, fence); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}
