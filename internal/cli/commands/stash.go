package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/quarry/internal/cli/output"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
	"github.com/leapstack-labs/quarry/pkg/transform"
)

// NewStashCommand creates the stash command with subcommands.
func NewStashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: "Store and retrieve statement documents",
		Long: `Stash keeps named statement documents in a local SQLite database.

Saving under an existing name replaces the stored document. Show decodes
the stashed document back into a statement before printing, so a
document the stash cannot round-trip is reported instead of shown.`,
	}

	// Add subcommands
	cmd.AddCommand(newStashSaveCommand())
	cmd.AddCommand(newStashListCommand())
	cmd.AddCommand(newStashShowCommand())
	cmd.AddCommand(newStashDeleteCommand())

	return cmd
}

func newStashSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> [file]",
		Short: "Transform a parse document and stash its statement",
		Long: `Save transforms a parse document and stores the resulting statement
document under the given name. The document must contain exactly one
statement.`,
		Example: `  # Stash a statement under the name daily-report
  quarry stash save daily-report query.json

  # Stash from stdin
  cat query.json | quarry stash save daily-report`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runStashSave,
	}
}

func newStashListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stashed statements",
		Args:  cobra.NoArgs,
		RunE:  runStashList,
	}
}

func newStashShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stashed statement and its document",
		Args:  cobra.ExactArgs(1),
		RunE:  runStashShow,
	}
}

func newStashDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stashed statement",
		Args:  cobra.ExactArgs(1),
		RunE:  runStashDelete,
	}
}

func runStashSave(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	name := args[0]

	path := "-"
	if len(args) == 2 {
		path = args[1]
	}

	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return fmt.Errorf("%s: %w", sourceName(path), err)
	}
	tree, err := pgtree.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", sourceName(path), err)
	}
	res, err := transform.Build(tree)
	if err != nil {
		return fmt.Errorf("%s: %w", sourceName(path), err)
	}
	if n := res.NumStatements(); n != 1 {
		return fmt.Errorf("%s: stash save needs exactly one statement, document has %d", sourceName(path), n)
	}

	s, err := openStash(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	stmt := res.Statements()[0].Get()
	rec, err := s.Save(name, stmt)
	if err != nil {
		return err
	}

	cmdCtx.Logger.Debug("stashed statement", "name", rec.Name, "fingerprint", rec.Fingerprint)
	cmdCtx.Renderer.Printf("Saved %q (%s)\n", rec.Name, rec.StmtType)

	// An identical document stashed under other names is worth a note.
	if names, err := s.NamesByFingerprint(rec.Fingerprint); err == nil {
		for _, other := range names {
			if other != rec.Name {
				cmdCtx.Renderer.Printf("Note: %q stashes the same document\n", other)
			}
		}
	}
	return nil
}

// stashEntry is one row of the stash list report.
type stashEntry struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var stashColumns = []string{"name", "type", "fingerprint", "updated"}

func runStashList(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)

	s, err := openStash(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	records, err := s.List()
	if err != nil {
		return err
	}

	entries := make([]stashEntry, len(records))
	for i, rec := range records {
		entries[i] = stashEntry{
			Name:        rec.Name,
			Type:        rec.StmtType,
			Fingerprint: fmt.Sprintf("%016x", rec.Fingerprint),
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		}
	}

	w := cmd.OutOrStdout()
	if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, e.Type, e.Fingerprint, e.UpdatedAt.Format(time.RFC3339)}
	}
	return renderRows(w, cmdCtx.Renderer.EffectiveMode(), stashColumns, rows, "statements")
}

func runStashShow(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	name := args[0]

	s, err := openStash(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	rec, err := s.GetByName(name)
	if err != nil {
		return err
	}

	// Prove the document still decodes before showing it.
	stmt, _, err := rec.Decode()
	if err != nil {
		return err
	}

	if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Name        string          `json:"name"`
			Type        string          `json:"type"`
			Fingerprint string          `json:"fingerprint"`
			CreatedAt   time.Time       `json:"created_at"`
			UpdatedAt   time.Time       `json:"updated_at"`
			Document    json.RawMessage `json:"document"`
		}{
			Name:        rec.Name,
			Type:        rec.StmtType,
			Fingerprint: fmt.Sprintf("%016x", rec.Fingerprint),
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
			Document:    json.RawMessage(rec.Document),
		})
	}

	r := cmdCtx.Renderer
	r.Header(2, rec.Name)
	r.KeyValue("Type", rec.StmtType)
	if target, detail := summarize(stmt); target != "" || detail != "" {
		r.KeyValue("Target", target)
		r.KeyValue("Detail", detail)
	}
	r.KeyValue("Fingerprint", fmt.Sprintf("%016x", rec.Fingerprint))
	r.KeyValue("Created", rec.CreatedAt.Format(time.RFC3339))
	r.KeyValue("Updated", rec.UpdatedAt.Format(time.RFC3339))
	r.Println("")

	var buf bytes.Buffer
	if err := json.Indent(&buf, rec.Document, "", "  "); err != nil {
		return err
	}
	r.Println(buf.String())
	return nil
}

func runStashDelete(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	name := args[0]

	s, err := openStash(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.DeleteByName(name); err != nil {
		return err
	}

	cmdCtx.Renderer.Printf("Deleted %q\n", name)
	return nil
}
