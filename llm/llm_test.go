package llm_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/llm"
	"github.com/devcompass/compass-cli/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixPrompt(t *testing.T) {
	t.Run("RejectsEmptyCode", func(t *testing.T) {
		_, err := llm.FixPrompt(&model.CodeInfo{Code: "  \n"})
		assert.ErrorIs(t, err, llm.ErrEmptyInput)
		_, err = llm.FixPrompt(nil)
		assert.ErrorIs(t, err, llm.ErrEmptyInput)
	})
	t.Run("IncludesCodeAndError", func(t *testing.T) {
		p, err := llm.FixPrompt(&model.CodeInfo{
			Code:         "print(x)",
			Language:     "python",
			ErrorMessage: "NameError: name 'x' is not defined",
		})
		require.NoError(t, err)
		assert.Equal(t, codeblock.ModelTypeCodeFixer, p.ModelType)
		assert.Contains(t, p.User, "Fix the following python code.")
		assert.Contains(t, p.User, "NameError: name 'x' is not defined")
		assert.Contains(t, p.User, "```python\nprint(x)\n```")
		assert.Contains(t, p.System, "Fixed code:")
	})
}

func TestChatPrompt(t *testing.T) {
	p, err := llm.ChatPrompt(&model.QuestionInfo{
		Question:          "how do I reverse a slice?",
		PreviousQuestions: []string{"what is a slice?"},
	})
	require.NoError(t, err)
	assert.Equal(t, codeblock.ModelTypeGeneral, p.ModelType)
	assert.Contains(t, p.User, "- what is a slice?")
	assert.Contains(t, p.User, "how do I reverse a slice?")

	_, err = llm.ChatPrompt(&model.QuestionInfo{})
	assert.ErrorIs(t, err, llm.ErrEmptyInput)
}

func TestLearningPathPrompt(t *testing.T) {
	p, err := llm.LearningPathPrompt(&model.LearningPathInfo{Topic: "Kubernetes"})
	require.NoError(t, err)
	assert.Equal(t, codeblock.ModelTypeGeneral, p.ModelType)
	assert.Contains(t, p.User, `"Kubernetes" aimed at a beginner developer`)

	p, err = llm.LearningPathPrompt(&model.LearningPathInfo{Topic: "Go", Level: "senior"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "aimed at a senior developer")
}

type fakeStreamer struct {
	chunks []string
	err    error
	closed bool
}

func (f *fakeStreamer) Recv() ([]byte, error) {
	if len(f.chunks) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	c := f.chunks[0]
	f.chunks = f.chunks[1:]
	return []byte(c), nil
}

func (f *fakeStreamer) Close() error {
	f.closed = true
	return nil
}

func TestReadAll(t *testing.T) {
	t.Run("CopiesChunks", func(t *testing.T) {
		s := &fakeStreamer{chunks: []string{"Hello", ", ", "world"}}
		var buf bytes.Buffer
		got, err := llm.ReadAll(s, &buf)
		require.NoError(t, err)
		assert.Equal(t, "Hello, world", got)
		assert.Equal(t, "Hello, world", buf.String())
		assert.True(t, s.closed)
	})
	t.Run("ReturnsPartialOnError", func(t *testing.T) {
		boom := errors.New("boom")
		s := &fakeStreamer{chunks: []string{"par"}, err: boom}
		got, err := llm.ReadAll(s, nil)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "par", got)
		assert.True(t, s.closed)
	})
}
