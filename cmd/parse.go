package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/ingest/parser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	parseModelType string
	parseOutput    string
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Extract original and fixed code from saved model responses",
	Example: `
  compass parse response.md
  compass parse answers/*.md --output json
  pbpaste | compass parse --model general
  `,
	Long: `
  Parse reads markdown responses from files, or from stdin when no files are
  given, and prints the original code, the fixed code and the explanation found
  in each of them.
  `,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "parse")

		mt := codeblock.ModelType(parseModelType)
		if mt != codeblock.ModelTypeGeneral && mt != codeblock.ModelTypeCodeFixer {
			display.FatalErr(fmt.Errorf("unknown model type %q", parseModelType), "use general or code-fixer")
		}

		var results []*parser.Result
		if len(args) == 0 {
			res, err := parser.ParseReader(os.Stdin, mt)
			if err != nil {
				display.FatalErr(err)
			}
			results = append(results, res)
		} else {
			var err error
			results, err = parser.ParseFiles(ctx, args, mt)
			if errors.Is(err, parser.ErrUnsupportedFile) {
				display.FatalErr(err, fmt.Sprintf("supported extensions: %v", parser.SupportedExtensions))
			} else if err != nil {
				display.FatalErr(err)
			}
		}
		logger.Debug("parsed responses", "count", len(results))

		if err := writeResults(os.Stdout, results, parseOutput); err != nil {
			display.FatalErr(err)
		}
	},
}

func writeResults(w io.Writer, results []*parser.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		r, err := display.NewRenderer(w, "auto")
		if err != nil {
			return err
		}
		for _, res := range results {
			if res.Path != "" {
				fmt.Fprintf(w, "==> %s <==\n", res.Path)
			}
			if res.Parsed == nil {
				fmt.Fprintln(w, "(not a code-fixer response)")
				continue
			}
			if err := r.Response(res.Parsed); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseModelType, "model", "m", string(codeblock.ModelTypeCodeFixer), "model type that produced the responses: general or code-fixer")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "text", "output format: text, json or yaml")
}
