package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/quarry/internal/cli/output"
	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
	"github.com/leapstack-labs/quarry/pkg/transform"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var exprs bool

	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Summarize the statements in parse documents",
		Long: `Inspect transforms parse documents and prints one summary row per
statement instead of full statement documents.

The fingerprint column is a stable hash of the statement's encoded
document; statements that encode identically share one fingerprint.
With --expressions, the registered predicate expressions are listed
too, rendered the way the engine derives output names.`,
		Example: `  # Summarize a parse document
  quarry inspect query.json

  # Summaries as JSON, from stdin
  cat query.json | quarry inspect -o json

  # Include the registered predicate expressions
  quarry inspect --expressions query.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, exprs)
		},
	}

	cmd.Flags().BoolVar(&exprs, "expressions", false, "List registered predicate expressions as well")

	return cmd
}

// statementSummary is one row of the inspect report.
type statementSummary struct {
	Source      string `json:"source"`
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Target      string `json:"target,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

// expressionSummary is one row of the registered-expression report.
type expressionSummary struct {
	Source  string `json:"source"`
	Index   int    `json:"index"`
	Type    string `json:"type"`
	Display string `json:"display"`
}

func runInspect(cmd *cobra.Command, args []string, exprs bool) error {
	cmdCtx := NewCommandContext(cmd)

	if len(args) == 0 {
		args = []string{"-"}
	}

	summaries := []statementSummary{}
	expressions := []expressionSummary{}
	for _, path := range args {
		fileSummaries, fileExprs, err := inspectOne(cmd.InOrStdin(), path)
		if err != nil {
			return fmt.Errorf("%s: %w", sourceName(path), err)
		}
		summaries = append(summaries, fileSummaries...)
		expressions = append(expressions, fileExprs...)
	}

	cmdCtx.Logger.Debug("inspected documents", "documents", len(args), "statements", len(summaries))
	if !exprs {
		return renderSummaries(cmd.OutOrStdout(), cmdCtx.Renderer.EffectiveMode(), summaries)
	}
	return renderSummariesWithExpressions(cmd.OutOrStdout(), cmdCtx.Renderer.EffectiveMode(), summaries, expressions)
}

func inspectOne(stdin io.Reader, path string) ([]statementSummary, []expressionSummary, error) {
	data, err := readInput(stdin, path)
	if err != nil {
		return nil, nil, err
	}
	tree, err := pgtree.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	res, err := transform.Build(tree)
	if err != nil {
		return nil, nil, err
	}

	var summaries []statementSummary
	for i, h := range res.Statements() {
		stmt := h.Get()
		doc, err := ast.EncodeStatement(stmt)
		if err != nil {
			return nil, nil, err
		}
		target, detail := summarize(stmt)
		summaries = append(summaries, statementSummary{
			Source:      sourceName(path),
			Index:       i + 1,
			Type:        stmt.Type().String(),
			Target:      target,
			Detail:      detail,
			Fingerprint: fmt.Sprintf("%016x", ast.Fingerprint(doc)),
		})
	}

	var expressions []expressionSummary
	for i, h := range res.Expressions() {
		expr := h.Get()
		expressions = append(expressions, expressionSummary{
			Source:  sourceName(path),
			Index:   i + 1,
			Type:    expr.Type().String(),
			Display: ast.DisplayName(expr),
		})
	}
	return summaries, expressions, nil
}

// summarize produces the target object and a short clause description
// for one statement.
func summarize(stmt ast.Statement) (target, detail string) {
	switch s := stmt.(type) {
	case *ast.SelectStatement:
		clauses := []string{fmt.Sprintf("%d columns", len(s.Select))}
		if s.Distinct {
			clauses = append(clauses, "distinct")
		}
		if s.Where.Valid() {
			clauses = append(clauses, "where")
		}
		if s.GroupBy != nil {
			clauses = append(clauses, "group by")
		}
		if s.OrderBy != nil {
			clauses = append(clauses, "order by")
		}
		if s.Limit != nil {
			clauses = append(clauses, "limit")
		}
		if s.UnionSelect != nil {
			clauses = append(clauses, "union")
		}
		return fromName(s.From), strings.Join(clauses, ", ")
	case *ast.InsertStatement:
		if s.InsertType == ast.InsertSelect {
			return s.Table.String(), "from select"
		}
		return s.Table.String(), fmt.Sprintf("%d rows", len(s.Values))
	case *ast.UpdateStatement:
		detail := fmt.Sprintf("%d assignments", len(s.Updates))
		if s.Where.Valid() {
			detail += ", where"
		}
		return s.Table.String(), detail
	case *ast.DeleteStatement:
		if s.Where.Valid() {
			return s.Table.String(), "where"
		}
		return s.Table.String(), "all rows"
	case *ast.CreateStatement:
		return createTarget(s), s.CreateType.String()
	case *ast.CreateFunctionStatement:
		return s.Name, s.Language.String()
	case *ast.DropStatement:
		return dropTarget(s), s.DropType.String()
	case *ast.CopyStatement:
		direction := "to"
		if s.IsFrom {
			direction = "from"
		}
		target := fromName(s.Table)
		if s.Select != nil {
			target = "(query)"
		}
		return target, fmt.Sprintf("%s %s, %s", direction, s.FilePath, s.Format)
	case *ast.ExplainStatement:
		target, _ := summarize(s.Inner)
		return target, "explains " + s.Inner.Type().String()
	case *ast.PrepareStatement:
		return s.Name, "prepares " + s.Query.Type().String()
	case *ast.ExecuteStatement:
		return s.Name, fmt.Sprintf("%d parameters", len(s.Parameters))
	case *ast.TransactionStatement:
		return "", s.Kind.String()
	case *ast.AnalyzeStatement:
		if len(s.Columns) == 0 {
			return s.Table.String(), "all columns"
		}
		return s.Table.String(), strings.Join(s.Columns, ", ")
	case *ast.VariableSetStatement:
		return s.Name, fmt.Sprintf("%d values", len(s.Values))
	default:
		return "", ""
	}
}

func fromName(r *ast.TableRef) string {
	switch {
	case r == nil:
		return ""
	case r.Type == ast.TableRefName:
		return r.Table.String()
	case r.Type == ast.TableRefSelect:
		return "(subquery)"
	case r.Type == ast.TableRefJoin:
		return "(join)"
	case r.Type == ast.TableRefCrossProduct:
		return fmt.Sprintf("(%d tables)", len(r.List))
	default:
		return r.Alias
	}
}

func createTarget(s *ast.CreateStatement) string {
	switch s.CreateType {
	case ast.CreateIndex:
		return s.IndexName
	case ast.CreateTrigger:
		return s.TriggerName
	case ast.CreateView:
		return s.ViewName
	default:
		return s.Table.String()
	}
}

func dropTarget(s *ast.DropStatement) string {
	switch s.DropType {
	case ast.DropIndex:
		return s.IndexName
	case ast.DropTrigger:
		return s.TriggerName
	case ast.DropPreparedStatement:
		return s.PreparedName
	default:
		return s.Table.String()
	}
}

var (
	summaryColumns    = []string{"source", "#", "type", "target", "detail", "fingerprint"}
	expressionColumns = []string{"source", "#", "type", "display"}
)

func renderSummaries(w io.Writer, mode output.OutputMode, summaries []statementSummary) error {
	if mode == output.ModeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	return renderRows(w, mode, summaryColumns, summaryRows(summaries), "statements")
}

func renderSummariesWithExpressions(w io.Writer, mode output.OutputMode, summaries []statementSummary, expressions []expressionSummary) error {
	if mode == output.ModeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Statements  []statementSummary  `json:"statements"`
			Expressions []expressionSummary `json:"expressions"`
		}{summaries, expressions})
	}

	if err := renderRows(w, mode, summaryColumns, summaryRows(summaries), "statements"); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)

	rows := make([][]string, len(expressions))
	for i, e := range expressions {
		rows[i] = []string{e.Source, fmt.Sprintf("%d", e.Index), e.Type, e.Display}
	}
	return renderRows(w, mode, expressionColumns, rows, "expressions")
}

func summaryRows(summaries []statementSummary) [][]string {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{s.Source, fmt.Sprintf("%d", s.Index), s.Type, s.Target, s.Detail, s.Fingerprint}
	}
	return rows
}
