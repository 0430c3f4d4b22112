// ABOUTME: Integration tests for the notes CLI commands.
// ABOUTME: Builds the binary once and drives it against temp sqlite stores.

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var notesBin string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "notes-bin-")
	if err != nil {
		panic(err)
	}
	notesBin = filepath.Join(dir, "notes")

	cmd := exec.Command("go", "build", "-o", notesBin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic(string(out))
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type env struct {
	t      *testing.T
	dbPath string
	xdg    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	return &env{t: t, dbPath: filepath.Join(dir, "notes.db"), xdg: dir}
}

// withoutWelcome writes a config that turns off first-run seeding.
func (e *env) withoutWelcome() *env {
	e.t.Helper()
	cfgDir := filepath.Join(e.xdg, "config", "notes")
	if err := os.MkdirAll(cfgDir, 0750); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("seed_welcome: false\n"), 0600); err != nil {
		e.t.Fatal(err)
	}
	return e
}

func (e *env) run(args ...string) (string, error) {
	allArgs := append([]string{"--backend", "sqlite", "--db", e.dbPath}, args...)
	cmd := exec.Command(notesBin, allArgs...) //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(e.xdg, "config"),
		"XDG_DATA_HOME="+filepath.Join(e.xdg, "data"),
		"EDITOR=false",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (e *env) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("%s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func idPrefixFor(t *testing.T, listOut, title string) string {
	t.Helper()
	for _, line := range strings.Split(listOut, "\n") {
		if strings.Contains(line, title) {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return fields[0]
			}
		}
	}
	t.Fatalf("no id for %q in:\n%s", title, listOut)
	return ""
}

func TestAddListShowDelete(t *testing.T) {
	e := newEnv(t).withoutWelcome()

	out := e.mustRun("add", "Test Note", "--content", "Test content here")
	if !strings.Contains(out, "Note created successfully!") {
		t.Errorf("expected creation message in output: %s", out)
	}

	out = e.mustRun("list")
	if !strings.Contains(out, "Test Note") {
		t.Errorf("expected 'Test Note' in list: %s", out)
	}
	idPrefix := idPrefixFor(t, out, "Test Note")

	out = e.mustRun("show", idPrefix)
	if !strings.Contains(out, "Test content") {
		t.Errorf("expected 'Test content' in show: %s", out)
	}

	out = e.mustRun("edit", idPrefix, "--title", "Renamed")
	if !strings.Contains(out, "Note updated successfully!") {
		t.Errorf("expected update message: %s", out)
	}
	out = e.mustRun("show", idPrefix)
	if !strings.Contains(out, "Renamed") || !strings.Contains(out, "Test content") {
		t.Errorf("expected renamed note with old content: %s", out)
	}

	out = e.mustRun("rm", idPrefix, "--force")
	if !strings.Contains(out, "deleted") {
		t.Errorf("expected 'deleted' in output: %s", out)
	}

	out = e.mustRun("list")
	if !strings.Contains(out, "No notes yet") {
		t.Errorf("expected empty state: %s", out)
	}
}

func TestRemoveMissingNoteIsNoOp(t *testing.T) {
	e := newEnv(t).withoutWelcome()
	e.mustRun("add", "Keep", "--content", "body")

	out := e.mustRun("rm", "ffffffff-ffff", "--force")
	if !strings.Contains(out, "nothing deleted") {
		t.Errorf("expected no-op message: %s", out)
	}

	out = e.mustRun("list")
	if !strings.Contains(out, "Keep") {
		t.Errorf("existing note should survive: %s", out)
	}
}

func TestAddRejectsBlankContent(t *testing.T) {
	e := newEnv(t).withoutWelcome()

	out, err := e.run("add", "Title", "--content", "   ")
	if err == nil {
		t.Fatalf("expected failure, got: %s", out)
	}
	if !strings.Contains(out, "please fill in both title and content") {
		t.Errorf("expected validation message: %s", out)
	}
}

func TestSearch(t *testing.T) {
	e := newEnv(t).withoutWelcome()

	e.mustRun("add", "Go Programming", "--content", "Learn about goroutines")
	e.mustRun("add", "Cooking", "--content", "How to make pasta")

	out := e.mustRun("list", "--search", "GOROUTINES")
	if !strings.Contains(out, "Go Programming") {
		t.Errorf("expected 'Go Programming' in search: %s", out)
	}
	if strings.Contains(out, "Cooking") {
		t.Errorf("did not expect 'Cooking' in search: %s", out)
	}

	out = e.mustRun("list", "--search", "zebra")
	if !strings.Contains(out, "No notes found") {
		t.Errorf("expected no-match state: %s", out)
	}
}

func TestWelcomeNoteSeededOnce(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("list")
	if !strings.Contains(out, "Welcome to Notes!") {
		t.Fatalf("expected welcome note on first run: %s", out)
	}

	out = e.mustRun("clear", "--force")
	if !strings.Contains(out, "All notes cleared!") {
		t.Errorf("expected clear message: %s", out)
	}

	out = e.mustRun("list")
	if strings.Contains(out, "Welcome to Notes!") {
		t.Errorf("welcome note came back after clear: %s", out)
	}
}

func TestExportImport(t *testing.T) {
	src := newEnv(t).withoutWelcome()
	src.mustRun("add", "Groceries", "--content", "milk")
	src.mustRun("add", "Work", "--content", "standup")

	exportPath := filepath.Join(t.TempDir(), "notes.json")
	src.mustRun("export", "--output", exportPath)

	dst := newEnv(t).withoutWelcome()
	out := dst.mustRun("import", exportPath)
	if !strings.Contains(out, "Imported 2 notes") {
		t.Errorf("expected 2 imported: %s", out)
	}

	out = dst.mustRun("import", exportPath)
	if !strings.Contains(out, "Imported 0 notes (2 already present)") {
		t.Errorf("expected duplicates to be skipped: %s", out)
	}

	out = dst.mustRun("list")
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "Work") {
		t.Errorf("expected imported notes in list: %s", out)
	}

	mdDir := filepath.Join(t.TempDir(), "md")
	dst.mustRun("export", "--format", "md", "--output", mdDir)
	entries, err := os.ReadDir(mdDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 markdown files, got %d", len(entries))
	}
}

func TestUnknownBackend(t *testing.T) {
	e := newEnv(t)
	out, err := e.run("--backend", "nope", "list")
	if err == nil {
		t.Fatalf("expected failure, got: %s", out)
	}
	if !strings.Contains(out, `unknown backend "nope"`) {
		t.Errorf("expected backend error: %s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := exec.Command(notesBin, "version").CombinedOutput()
	if err != nil {
		t.Fatalf("version failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(string(out), "notes dev") {
		t.Errorf("unexpected version output: %s", out)
	}
}
