package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teolang/teo/source/database"
	"github.com/teolang/teo/source/text"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func emptyStdin(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Open(writeFile(t, t.TempDir(), "stdin", ""))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRunFile(t *testing.T) {
	text.SetColor(false)
	dir := t.TempDir()
	tests := []struct {
		program string
		code    int
		stdout  string
		stderr  string
	}{
		{`print("hello");`, 0, "hello\n", ""},
		{`print(1); return(7); print(2);`, 7, "1\n", ""},
		{`print(1); print(1 / 0);`, 1, "1\n", "[DivisionByZero]"},
		{`print(1`, 2, "", "[ParseError]"},
	}
	for _, test := range tests {
		path := writeFile(t, dir, "prog.teo", test.program)
		var stdout, stderr bytes.Buffer
		code := run([]string{"teo", path}, emptyStdin(t), &stdout, &stderr)
		if code != test.code || stdout.String() != test.stdout || !strings.Contains(stderr.String(), test.stderr) {
			t.Fatalf("Running %s | Wanted : %d, %q, %q | Got : %d, %q, %q", test.program,
				test.code, test.stdout, test.stderr, code, stdout.String(), stderr.String())
		}
	}
}

func TestOutputFileAndEcho(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.teo", `print("a", [1, 2]);`)
	outPath := filepath.Join(dir, "out.txt")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"teo", "-o", outPath, path}, emptyStdin(t), &stdout, &stderr); code != 0 {
		t.Fatalf("Exit code %d: %s", code, stderr.String())
	}
	written, _ := os.ReadFile(outPath)
	if string(written) != "a\n[1, 2]\n" || stdout.String() != string(written) {
		t.Fatalf("Got %q in the file and %q echoed", written, stdout.String())
	}
	config := writeFile(t, dir, "teo.yaml", "echo: false\n")
	stdout.Reset()
	if code := run([]string{"teo", "-c", config, "-o", outPath, path}, emptyStdin(t), &stdout, &stderr); code != 0 {
		t.Fatalf("Exit code %d: %s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("Echo should be off, got %q", stdout.String())
	}
}

func TestInputFromStdin(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.teo", `x = inputf("%Number %String"); print(x[0] * 2, x[1]);`)
	stdin, err := os.Open(writeFile(t, dir, "stdin", "21\nhi\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer stdin.Close()
	var stdout, stderr bytes.Buffer
	if code := run([]string{"teo", path}, stdin, &stdout, &stderr); code != 0 || stdout.String() != "42\nhi\n" {
		t.Fatalf("Got %d, %q, %q", code, stdout.String(), stderr.String())
	}
}

func TestTranscriptFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.teo", `print("one"); print("two"); return(5);`)
	dsn := filepath.Join(dir, "transcript.db")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"teo", "-d", "SQLite", "-t", dsn, path}, emptyStdin(t), &stdout, &stderr); code != 5 {
		t.Fatalf("Exit code %d: %s", code, stderr.String())
	}
	db, err := database.GetdB("SQLite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var lines, status int
	if err := db.QueryRow("SELECT COUNT(*) FROM teo_output").Scan(&lines); err != nil || lines != 2 {
		t.Fatalf("Wanted 2 lines, got %d, %v", lines, err)
	}
	if err := db.QueryRow("SELECT exit_status FROM teo_runs").Scan(&status); err != nil || status != 5 {
		t.Fatalf("Wanted exit status 5, got %d, %v", status, err)
	}
}

func TestBadCommandLines(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"teo", "-x"},
		{"teo", "a.teo", "b.teo"},
		{"teo", "-c", writeFile(t, dir, "bad.yaml", "max_call_depht: 3\n"), "a.teo"},
		{"teo", "-d", "SQLite", "a.teo"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(args, emptyStdin(t), &stdout, &stderr); code != EXIT_PARSE_ERROR {
			t.Fatalf("Running %v | Wanted : %d | Got : %d", args, EXIT_PARSE_ERROR, code)
		}
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"teo", "-h"}, emptyStdin(t), &stdout, &stderr); code != 0 || !strings.Contains(stdout.String(), "Usage: teo") {
		t.Fatalf("Bad help: %d, %q", code, stdout.String())
	}
	if code := run([]string{"teo", filepath.Join(dir, "missing.teo")}, emptyStdin(t), &stdout, &stderr); code != EXIT_EVAL_ERROR {
		t.Fatalf("A missing file should exit with %d, got %d", EXIT_EVAL_ERROR, code)
	}
}
