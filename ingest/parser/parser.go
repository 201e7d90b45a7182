// Package parser reads model responses saved to disk and classifies them.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/slice"
	"golang.org/x/sync/errgroup"
)

const maxConcurrency = 16

var SupportedExtensions = []string{".md", ".markdown", ".txt"}

var ErrUnsupportedFile = errors.New("unsupported response file")

// Result is the outcome of parsing one response.
// Parsed is nil when the model type does not classify code.
type Result struct {
	Path   string                        `json:"path,omitempty" yaml:"path,omitempty"`
	Text   string                        `json:"-" yaml:"-"`
	Parsed *codeblock.ParsedCodeResponse `json:"parsed" yaml:"parsed"`
}

// ParseReader parses a single response read from r.
func ParseReader(r io.Reader, mt codeblock.ModelType) (*Result, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(bs)
	return &Result{Text: text, Parsed: codeblock.Parse(text, mt)}, nil
}

// ParseFile parses the response stored at path.
func ParseFile(path string, mt codeblock.ModelType) (*Result, error) {
	if ext := strings.ToLower(filepath.Ext(path)); !slice.Has(SupportedExtensions, ext) {
		return nil, fmt.Errorf("%w: invalid file extension: %q", ErrUnsupportedFile, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := ParseReader(f, mt)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	res.Path = path
	return res, nil
}

// ParseFiles parses paths concurrently. Results keep the order of paths.
// The first failure cancels the remaining work.
func ParseFiles(ctx context.Context, paths []string, mt codeblock.ModelType) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ParseFile(path, mt)
			if err != nil {
				slog.Debug("failed to parse response file", "path", path, "err", err)
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
