package parser_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/ingest/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	tests := []struct {
		name     string
		filepath string
		err      error
		parsed   *codeblock.ParsedCodeResponse
	}{
		{
			name:     "Wrong File",
			filepath: "testdata/response.json",
			err:      parser.ErrUnsupportedFile,
		},
		{
			name:     "Missing File",
			filepath: "testdata/missing.md",
			err:      os.ErrNotExist,
		},
		{
			name:     "single.md",
			filepath: "testdata/single.md",
			parsed: &codeblock.ParsedCodeResponse{
				FixedCode:     "print(1)",
				Language:      "python",
				Explanation:   "Here is the fix:",
				HasCodeBlocks: true,
			},
		},
		{
			name:     "pair.markdown",
			filepath: "testdata/pair.markdown",
			parsed: &codeblock.ParsedCodeResponse{
				OriginalCode:  "for i := 0; i <= len(xs); i++ {\n\tuse(xs[i])\n}",
				FixedCode:     "for i := 0; i < len(xs); i++ {\n\tuse(xs[i])\n}",
				Language:      "go",
				Explanation:   "The loop runs one time too many.\n\nOriginal code:",
				HasCodeBlocks: true,
			},
		},
		{
			name:     "prose.txt",
			filepath: "testdata/prose.txt",
			parsed: &codeblock.ParsedCodeResponse{
				Explanation: "Nothing to fix here, the code is correct.",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := parser.ParseFile(tc.filepath, codeblock.ModelTypeCodeFixer)
			if tc.err != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.Equal(t, tc.filepath, res.Path)
				assert.Equal(t, tc.parsed, res.Parsed)
			}
		})
	}
}

func TestParseFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("KeepsOrder", func(t *testing.T) {
		paths := []string{"testdata/prose.txt", "testdata/single.md", "testdata/pair.markdown"}
		results, err := parser.ParseFiles(ctx, paths, codeblock.ModelTypeCodeFixer)
		require.NoError(t, err)
		require.Len(t, results, len(paths))
		for i, res := range results {
			assert.Equal(t, paths[i], res.Path)
		}
		assert.False(t, results[0].Parsed.HasCodeBlocks)
		assert.Equal(t, "print(1)", results[1].Parsed.FixedCode)
	})
	t.Run("FailsOnUnsupportedFile", func(t *testing.T) {
		_, err := parser.ParseFiles(ctx, []string{"testdata/single.md", "testdata/response.json"}, codeblock.ModelTypeCodeFixer)
		assert.ErrorIs(t, err, parser.ErrUnsupportedFile)
	})
	t.Run("GeneralModelHasNoParsedOutput", func(t *testing.T) {
		results, err := parser.ParseFiles(ctx, []string{"testdata/single.md"}, codeblock.ModelTypeGeneral)
		require.NoError(t, err)
		assert.Nil(t, results[0].Parsed)
		assert.Contains(t, results[0].Text, "print(1)")
	})
}

func TestParseReader(t *testing.T) {
	res, err := parser.ParseReader(strings.NewReader("```sh\nls -la\n```"), codeblock.ModelTypeCodeFixer)
	require.NoError(t, err)
	assert.Empty(t, res.Path)
	assert.Equal(t, "ls -la", res.Parsed.FixedCode)
}
