// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// SampleSelectDoc is a parse document holding SELECT a FROM t WHERE a > 1.
const SampleSelectDoc = `{"version": 160001, "stmts": [{"stmt": {"SelectStmt": {
	"target_list": [{"ResTarget": {"val": {"ColumnRef": {"fields": [{"String": {"val": "a"}}]}}}}],
	"from_clause": [{"RangeVar": {"relname": "t"}}],
	"where_clause": {"A_Expr": {
		"kind": "op",
		"name": [">"],
		"lexpr": {"ColumnRef": {"fields": [{"String": {"val": "a"}}]}},
		"rexpr": {"A_Const": {"val": {"Integer": {"val": 1}}}}
	}}
}}}]}`

// SetupTestProject creates a temporary project directory holding a
// quarry.yaml and a sample parse document. The config routes output to
// JSON and keeps the stash inside the project.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	projectConfig := `stash_path: stash.db
output: json
`
	if err := os.WriteFile(filepath.Join(tmpDir, "quarry.yaml"), []byte(projectConfig), 0600); err != nil {
		t.Fatalf("failed to create quarry.yaml: %v", err)
	}

	WriteParseDoc(t, tmpDir, "query.json", SampleSelectDoc)

	return tmpDir
}

// WriteParseDoc writes a parse document into dir and returns its path.
func WriteParseDoc(t *testing.T, dir, name, doc string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("failed to write parse document %s: %v", name, err)
	}
	return path
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
