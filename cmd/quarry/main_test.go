// Package main provides tests for the quarry CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/quarry/internal/cli"
)

const selectDoc = `{"version": 160001, "stmts": [{"stmt": {"SelectStmt": {
	"target_list": [{"ResTarget": {"val": {"ColumnRef": {"fields": [{"String": {"val": "a"}}]}}}}],
	"from_clause": [{"RangeVar": {"relname": "t"}}],
	"where_clause": {"A_Expr": {
		"kind": "op",
		"name": [">"],
		"lexpr": {"ColumnRef": {"fields": [{"String": {"val": "a"}}]}},
		"rexpr": {"A_Const": {"val": {"Integer": {"val": 1}}}}
	}}
}}}]}`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write parse document: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Quarry") {
		t.Errorf("version output should contain 'Quarry', got: %s", output)
	}
}

func TestVersionFlag(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("--version error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "quarry "+cli.Version) {
		t.Errorf("--version output should contain %q, got: %s", "quarry "+cli.Version, output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"transform", "inspect", "stash", "version", "completion"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestTransformCommand(t *testing.T) {
	docPath := writeDoc(t, t.TempDir(), "query.json", selectDoc)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"transform", docPath})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("transform command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `"stmt_type":"select"`) {
		t.Errorf("transform output should contain the statement document, got: %s", output)
	}
}

func TestTransformCommandIndent(t *testing.T) {
	docPath := writeDoc(t, t.TempDir(), "query.json", selectDoc)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"transform", "--indent", docPath})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("transform --indent command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `"stmt_type": "select"`) {
		t.Errorf("indented output should contain a spaced key, got: %s", output)
	}
}

func TestTransformCommandCheck(t *testing.T) {
	docPath := writeDoc(t, t.TempDir(), "query.json", selectDoc)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"transform", "--check", docPath})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("transform --check command error = %v", err)
	}
}

func TestTransformCommandStdin(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(selectDoc))
	cmd.SetArgs([]string{"transform"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("transform from stdin error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `"stmt_type":"select"`) {
		t.Errorf("transform output should contain the statement document, got: %s", output)
	}
}

func TestTransformCommandBadInput(t *testing.T) {
	docPath := writeDoc(t, t.TempDir(), "broken.json", "not a parse document")

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"transform", docPath})

	err := cmd.Execute()
	if err == nil {
		t.Error("transform of a broken document should return an error")
	}
	if !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("error should name the source file, got: %v", err)
	}
}

func TestInspectCommandJSON(t *testing.T) {
	docPath := writeDoc(t, t.TempDir(), "query.json", selectDoc)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"inspect", "-o", "json", docPath})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("inspect command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `"type": "select"`) {
		t.Errorf("inspect output should contain the statement type, got: %s", output)
	}
	if !strings.Contains(output, `"fingerprint"`) {
		t.Errorf("inspect output should contain a fingerprint, got: %s", output)
	}
}

func TestStashWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	docPath := writeDoc(t, tmpDir, "query.json", selectDoc)
	stashPath := filepath.Join(tmpDir, "stash.db")

	run := func(args ...string) (string, error) {
		cmd := cli.NewRootCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs(append(args, "--stash", stashPath))
		err := cmd.Execute()
		return buf.String(), err
	}

	output, err := run("stash", "save", "daily", docPath)
	if err != nil {
		t.Fatalf("stash save error = %v", err)
	}
	if !strings.Contains(output, `Saved "daily"`) {
		t.Errorf("save output should confirm the name, got: %s", output)
	}

	output, err = run("stash", "list")
	if err != nil {
		t.Fatalf("stash list error = %v", err)
	}
	if !strings.Contains(output, "daily") || !strings.Contains(output, "select") {
		t.Errorf("list output should contain the saved statement, got: %s", output)
	}

	output, err = run("stash", "show", "daily")
	if err != nil {
		t.Fatalf("stash show error = %v", err)
	}
	if !strings.Contains(output, "daily") || !strings.Contains(output, "stmt_type") {
		t.Errorf("show output should contain the statement document, got: %s", output)
	}

	output, err = run("stash", "delete", "daily")
	if err != nil {
		t.Fatalf("stash delete error = %v", err)
	}
	if !strings.Contains(output, `Deleted "daily"`) {
		t.Errorf("delete output should confirm the name, got: %s", output)
	}

	_, err = run("stash", "show", "daily")
	if err == nil {
		t.Error("show after delete should return an error")
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			cmd := cli.NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"completion", shell})

			err := cmd.Execute()
			if err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	err := cmd.Execute()
	if err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
