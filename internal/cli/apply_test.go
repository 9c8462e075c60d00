package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execCLI runs the root command with the given arguments, resetting flag
// state so tests do not leak values into each other.
func execCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	// Keep a user's real config file out of the run.
	t.Setenv("HOME", t.TempDir())

	applyBase, applySkip, applyOnly, applyExec = "", "", "", ""
	applyDirPerm, applyFilePerm = "", ""
	applyDryRun, applyQuiet, applyVerbose = false, false, false
	planBase = ""
	listJSON = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestApplyCommandBuiltin(t *testing.T) {
	base := t.TempDir()

	out, _, err := execCLI(t, "apply", "analytics-plugin", "--base", base)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}

	root := filepath.Join(base, "plugins", "analytics-plugin")
	for _, rel := range []string{
		"package.json",
		"plugin.config.json",
		filepath.Join("src", "index.ts"),
		filepath.Join("src", "components", "AnalyticsDashboard.tsx"),
		filepath.Join("src", "services", "tracker.ts"),
		filepath.Join("src", "types", "analytics.ts"),
	} {
		info, err := os.Stat(filepath.Join(root, rel))
		if err != nil {
			t.Errorf("expected %s: %v", rel, err)
			continue
		}
		if info.Size() != 0 {
			t.Errorf("%s has size %d, want 0", rel, info.Size())
		}
	}

	if !strings.Contains(out, "Created") || !strings.Contains(out, root) {
		t.Errorf("summary should mention the created tree, got:\n%s", out)
	}
}

func TestApplyCommandLayoutFile(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	src := `
name: local
tree:
  - file: a.txt
  - dir: sub
    children:
      - file: b.txt
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execCLI(t, "apply", path, "--base", base); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "a.txt")); err != nil {
		t.Errorf("expected a.txt: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "sub", "b.txt")); err != nil {
		t.Errorf("expected sub/b.txt: %v", err)
	}
}

func TestApplyCommandReportsFailures(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	src := `
name: conflicted
tree:
  - dir: sub
    children:
      - file: a.txt
  - file: ok.txt
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	// Occupy the declared directory with a file so its subtree fails.
	if err := os.WriteFile(filepath.Join(base, "sub"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, errOut, err := execCLI(t, "apply", path, "--base", base)
	if err == nil {
		t.Fatal("expected error for failing entries")
	}
	if !strings.Contains(err.Error(), "could not be created") {
		t.Errorf("error = %v, want mention of failed entries", err)
	}
	if !strings.Contains(errOut, "failed") {
		t.Errorf("stderr should carry the failure summary, got:\n%s", errOut)
	}

	// The sibling entry is still created.
	if _, err := os.Stat(filepath.Join(base, "ok.txt")); err != nil {
		t.Errorf("expected ok.txt despite sibling failure: %v", err)
	}
}

func TestApplyCommandDryRun(t *testing.T) {
	base := t.TempDir()

	out, _, err := execCLI(t, "apply", "oauth-module", "--base", base, "--dry-run")
	if err != nil {
		t.Fatalf("apply --dry-run error: %v", err)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created entries: %v", entries)
	}
	if !strings.Contains(out, "touch ") {
		t.Errorf("dry run output missing touch lines:\n%s", out)
	}
}

func TestPlanCommand(t *testing.T) {
	base := t.TempDir()

	out, _, err := execCLI(t, "plan", "oauth-module", "--base", base)
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("plan touched the filesystem: %v", entries)
	}
	if !strings.Contains(out, "mkdir -p ") || !strings.Contains(out, "Plan: ") {
		t.Errorf("plan output missing listing or footer:\n%s", out)
	}
}

func TestListCommandJSON(t *testing.T) {
	out, _, err := execCLI(t, "list", "--json")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("list --json output is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %v", len(entries), entries)
	}
	if entries[0].Name != "analytics-plugin" {
		t.Errorf("entries[0].Name = %q, want analytics-plugin", entries[0].Name)
	}
}
