package llm

import (
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

type ResponseStreamer interface {
	Recv() ([]byte, error)
	Close() error
}

type streamer struct {
	stream *openai.ChatCompletionStream
}

// NewStreamer wraps an OpenAI chat completion stream.
func NewStreamer(stream *openai.ChatCompletionStream) ResponseStreamer {
	return &streamer{stream: stream}
}

// Recv reads the next response from the stream.
// Recv blocks until it receives a response or an error occurs.
// Recv returns io.EOF when the stream has been closed.
func (s *streamer) Recv() ([]byte, error) {
	completion, err := s.stream.Recv()
	if err != nil {
		return nil, err
	}

	// usage-only chunks carry no choices
	if len(completion.Choices) == 0 {
		return nil, nil
	}

	data := completion.Choices[0].Delta.Content

	return []byte(data), nil
}

// Close closes the stream and releases any resources associated with it.
// Close should be called when the caller is done with the stream.
func (s *streamer) Close() error {
	if s.stream == nil {
		return nil
	}
	return s.stream.Close()
}

type genaiStreamer struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
}

// NewGenAIStreamer adapts a Gemini response sequence to a ResponseStreamer.
func NewGenAIStreamer(seq iter.Seq2[*genai.GenerateContentResponse, error]) ResponseStreamer {
	next, stop := iter.Pull2(seq)
	return &genaiStreamer{next: next, stop: stop}
}

func (g *genaiStreamer) Recv() ([]byte, error) {
	resp, err, ok := g.next()
	if !ok {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return []byte(resp.Text()), nil
}

func (g *genaiStreamer) Close() error {
	g.stop()
	return nil
}

// ReadAll copies every chunk of s to w as it arrives and returns the full
// response. The stream is closed before ReadAll returns.
func ReadAll(s ResponseStreamer, w io.Writer) (string, error) {
	defer s.Close()

	var sb strings.Builder
	for {
		chunk, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.Write(chunk)
		if w != nil {
			if _, err := w.Write(chunk); err != nil {
				return sb.String(), err
			}
		}
	}
}
