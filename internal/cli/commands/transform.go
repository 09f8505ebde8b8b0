package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
	"github.com/leapstack-labs/quarry/pkg/transform"
)

// NewTransformCommand creates the transform command.
func NewTransformCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "transform [file...]",
		Aliases: []string{"build"},
		Short:   "Transform parse documents into statement documents",
		Long: `Transform reads parse documents produced by the SQL grammar engine and
emits one JSON statement document per contained statement.

Each input file holds a single parse document. With no arguments, or
with "-", the document is read from standard input. A construct the
statement representation cannot express fails its whole document.`,
		Example: `  # Transform one parse document
  quarry transform query.json

  # Transform a document from stdin and verify the emitted documents
  cat query.json | quarry transform --check

  # Transform many documents, eight at a time
  quarry transform -j 8 dumps/*.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Decode every emitted document and verify it matches")

	return cmd
}

// fileOutput is the transform product of one input document.
type fileOutput struct {
	source string
	docs   [][]byte
}

func runTransform(cmd *cobra.Command, args []string, check bool) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	if len(args) == 0 {
		args = []string{"-"}
	}

	// Documents transform concurrently but emit in argument order.
	outputs := make([]*fileOutput, len(args))

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(cfg.Jobs)
	for i, path := range args {
		// go.mod targets Go 1.21, whose loop variables are per-loop, not
		// per-iteration; copy them so each goroutine sees its own pair.
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := transformOne(cmd.InOrStdin(), path, check)
			if err != nil {
				return fmt.Errorf("%s: %w", sourceName(path), err)
			}
			logger.Debug("transformed document", "source", out.source, "statements", len(out.docs))
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	total := 0
	for _, out := range outputs {
		for _, doc := range out.docs {
			if err := writeDocument(w, doc, cfg.Indent); err != nil {
				return err
			}
			total++
		}
	}

	logger.Info("transform complete", "documents", len(outputs), "statements", total)
	return nil
}

func transformOne(stdin io.Reader, path string, check bool) (*fileOutput, error) {
	data, err := readInput(stdin, path)
	if err != nil {
		return nil, err
	}

	tree, err := pgtree.Decode(data)
	if err != nil {
		return nil, err
	}

	res, err := transform.Build(tree)
	if err != nil {
		return nil, err
	}

	out := &fileOutput{source: sourceName(path)}
	for _, h := range res.Statements() {
		doc, err := ast.EncodeStatement(h.Get())
		if err != nil {
			return nil, err
		}
		if check {
			if err := verifyDocument(h.Get(), doc); err != nil {
				return nil, err
			}
		}
		out.docs = append(out.docs, doc)
	}
	return out, nil
}

// verifyDocument decodes doc into a fresh arena and compares the result
// against the statement the document was produced from.
func verifyDocument(want ast.Statement, doc []byte) error {
	res := ast.NewParseResult()
	got, _, err := ast.DecodeStatement(doc, res)
	if err != nil {
		return fmt.Errorf("emitted document does not decode: %w", err)
	}
	if !ast.StatementsEqual(want, got) {
		return fmt.Errorf("emitted document decodes to a different statement")
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func sourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

func writeDocument(w io.Writer, doc []byte, indent bool) error {
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, doc, "", "  "); err != nil {
			return err
		}
		doc = buf.Bytes()
	}
	if _, err := w.Write(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
