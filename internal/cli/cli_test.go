package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soyunomas/fileorg/internal/bucket"
	"github.com/soyunomas/fileorg/internal/engine"
)

// execute corre el comando raíz y devuelve stdout, stderr y el error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestMergeCommandConflict(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A")
	b := filepath.Join(dir, "B")
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(a, "x.txt"), "hello")
	writeFile(t, filepath.Join(b, "x.txt"), "world")

	stdout, stderr, err := execute(t, "merge", a, b, "--out", out)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := readFile(t, filepath.Join(out, "x.txt")); got != "hello" {
		t.Errorf("out/x.txt = %q, want hello", got)
	}
	if stdout != "" {
		t.Errorf("non-verbose run should not print a summary: %q", stdout)
	}
	if strings.Count(stderr, "conflicto") != 1 {
		t.Errorf("want exactly one conflict warning, stderr:\n%s", stderr)
	}
	if !strings.Contains(stderr, filepath.Join(a, "x.txt")) || !strings.Contains(stderr, filepath.Join(b, "x.txt")) {
		t.Errorf("warning must name both files, stderr:\n%s", stderr)
	}
}

func TestMergeCommandDuplicateIsQuiet(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A")
	b := filepath.Join(dir, "B")
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(a, "x.txt"), "hello")
	writeFile(t, filepath.Join(b, "x.txt"), "hello")

	_, stderr, err := execute(t, "merge", a, b, "--out", out)
	if err != nil {
		t.Fatal(err)
	}
	if stderr != "" {
		t.Errorf("expected no diagnostics, got:\n%s", stderr)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 1 {
		t.Errorf("out has %d entries, want 1", len(entries))
	}
}

func TestMergeCommandVerboseSummary(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A")
	writeFile(t, filepath.Join(a, "x.txt"), "hello")

	stdout, stderr, err := execute(t, "merge", a, "--out", filepath.Join(dir, "out"), "--verbose")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Resumen") || !strings.Contains(stdout, "Copiados: 1") {
		t.Errorf("summary missing:\n%s", stdout)
	}
	if !strings.Contains(stderr, "copiado") {
		t.Errorf("progress missing:\n%s", stderr)
	}
}

func TestMergeCommandJSON(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A")
	writeFile(t, filepath.Join(a, "x.txt"), "hello")

	stdout, _, err := execute(t, "merge", a, "--out", filepath.Join(dir, "out"), "--json")
	if err != nil {
		t.Fatal(err)
	}
	var rep struct {
		Summary struct {
			Copied int64 `json:"copied"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if rep.Summary.Copied != 1 {
		t.Errorf("copied = %d, want 1", rep.Summary.Copied)
	}
}

func TestMergeCommandConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A")
	writeFile(t, filepath.Join(a, "x.txt"), "hello")
	file := filepath.Join(dir, "file")
	writeFile(t, file, "x")

	if _, _, err := execute(t, "merge", a); err == nil {
		t.Error("missing --out should fail")
	}
	if _, _, err := execute(t, "merge", "--out", filepath.Join(dir, "out")); err == nil {
		t.Error("missing sources should fail")
	}
	if _, _, err := execute(t, "merge", filepath.Join(dir, "nope"), "--out", filepath.Join(dir, "out")); !errors.Is(err, engine.ErrNoSources) {
		t.Errorf("err = %v, want ErrNoSources", err)
	}
	if _, _, err := execute(t, "merge", a, "--out", file); !errors.Is(err, engine.ErrOutputUnusable) {
		t.Errorf("err = %v, want ErrOutputUnusable", err)
	}
	if _, _, err := execute(t, "merge", a, "--out", filepath.Join(dir, "out2"), "--checksum", "md5"); err == nil {
		t.Error("unknown checksum should fail")
	}
}

func TestSortCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	photo := filepath.Join(src, "photo.jpg")
	writeFile(t, photo, "p")
	mtime := time.Date(2023, time.March, 15, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(photo, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "sort", src, "--groupby", "ym", "--sep", "", "--out", out, "--utc"); err != nil {
		t.Fatalf("sort: %v", err)
	}
	dest := filepath.Join(out, "202303", "photo.jpg")
	if got := readFile(t, dest); got != "p" {
		t.Errorf("%s = %q", dest, got)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
	}
	// El origen sigue ahí
	if _, err := os.Stat(photo); err != nil {
		t.Errorf("source was removed: %v", err)
	}
}

func TestSortCommandDefaultSeparator(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	f := filepath.Join(src, "a.txt")
	writeFile(t, f, "a")
	mtime := time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(f, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "sort", src, "-g", "ymd", "-o", out, "--utc"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(out, "2024-07-04", "a.txt")); err != nil {
		t.Errorf("expected 2024-07-04/a.txt: %v", err)
	}
}

func TestSortCommandConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	out := filepath.Join(dir, "out")

	if _, _, err := execute(t, "sort", src, "--out", out); err == nil {
		t.Error("missing --groupby should fail")
	}
	if _, _, err := execute(t, "sort", src, "--out", out, "--groupby", "week"); !errors.Is(err, bucket.ErrInvalidGranularity) {
		t.Errorf("err = %v, want ErrInvalidGranularity", err)
	}
	if _, _, err := execute(t, "sort", src, "--out", out, "--groupby", "ymd", "--sep", "/../../"); !errors.Is(err, bucket.ErrInvalidSeparator) {
		t.Errorf("err = %v, want ErrInvalidSeparator", err)
	}
	if _, _, err := execute(t, "sort", filepath.Join(dir, "nope"), "--out", out, "--groupby", "y"); !errors.Is(err, engine.ErrNoSources) {
		t.Errorf("err = %v, want ErrNoSources", err)
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("output must not be created on a configuration error")
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "fileorg ") {
		t.Errorf("version output = %q", stdout)
	}
}
