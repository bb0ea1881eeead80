package database

import (
	"fmt"
	"strings"
	"testing"
)

func TestResolveDriver(t *testing.T) {
	tests := []struct{ name, want string }{
		{"SQLite", "sqlite"},
		{"sqlite", "sqlite"},
		{"MariaDB", "mysql"},
		{"Postgres", "postgres"},
		{"SQL Server", "sqlserver"},
	}
	for _, test := range tests {
		got, err := ResolveDriver(test.name)
		if err != nil || got != test.want {
			t.Fatalf("Resolving %s | Wanted : %s | Got : %s, %v", test.name, test.want, got, err)
		}
	}
	if _, err := ResolveDriver("dBase"); err == nil || !strings.Contains(err.Error(), "SQLite (sqlite)") {
		t.Fatalf("Wanted an error listing the drivers, got %v", err)
	}
}

func TestPlaceholders(t *testing.T) {
	for driver, want := range map[string]string{"postgres": "$1, $2", "sqlite": "?, ?", "oracle": ":1, :2", "sqlserver": "@p1, @p2"} {
		tr := &Transcript{driverName: driver}
		if got := tr.placeholders(2); got != want {
			t.Fatalf("Driver %s | Wanted : %s | Got : %s", driver, want, got)
		}
	}
}

func TestTranscript(t *testing.T) {
	db, err := GetdB("SQLite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	source := []byte(`print("one"); print(2); return(3);`)
	tr, err := NewTranscript(db, "SQLite", "prog.teo", source)
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprint(tr, "one\n")
	fmt.Fprint(tr, "2\n")
	runId, err := tr.Close(3)
	if err != nil {
		t.Fatal(err)
	}
	lines, err := tr.Output(runId)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != (OutputLine{1, "one"}) || lines[1] != (OutputLine{2, "2"}) {
		t.Fatalf("Bad transcript: %v", lines)
	}
	status, digest, err := tr.Run(runId)
	if err != nil {
		t.Fatal(err)
	}
	if status != 3 || digest != Digest(source) || len(digest) != 64 {
		t.Fatalf("Bad run: %d, %s", status, digest)
	}
	if _, err := tr.Write([]byte("late\n")); err == nil {
		t.Fatal("Writing to a closed transcript should fail")
	}
	if _, err := tr.Close(0); err == nil {
		t.Fatal("Closing a transcript twice should fail")
	}
}

func TestEveryDriverHasACatalogQuery(t *testing.T) {
	for friendly, driverName := range drivers {
		query, ok := catalogQueries[driverName]
		if !ok {
			t.Fatalf("No catalog query for %s", friendly)
		}
		if strings.Contains(query, "EXISTS") || !strings.HasSuffix(query, placeholder(driverName, 1)) {
			t.Fatalf("Catalog query for %s doesn't end with its parameter: %s", friendly, query)
		}
	}
	if catalogName("oracle", "teo_runs") != "TEO_RUNS" || catalogName("postgres", "teo_runs") != "teo_runs" {
		t.Fatal("Bad catalog names")
	}
}

func TestTablesAreCreatedOnce(t *testing.T) {
	db, err := GetdB("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	for _, table := range []string{"teo_runs", "teo_output"} {
		if exists, err := tableExists(db, "sqlite", table); err != nil || exists {
			t.Fatalf("Table %s exists too early: %v %v", table, exists, err)
		}
	}
	first, err := NewTranscript(db, "sqlite", "a.teo", []byte("print(1);"))
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprint(first, "1\n")
	runId, err := first.Close(0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewTranscript(db, "sqlite", "b.teo", []byte("print(2);"))
	if err != nil {
		t.Fatalf("A second transcript on the same database failed: %v", err)
	}
	if _, err := second.Close(0); err != nil {
		t.Fatal(err)
	}
	if lines, err := second.Output(runId); err != nil || len(lines) != 1 {
		t.Fatalf("The first run's output was lost: %v %v", lines, err)
	}
}

func TestLines(t *testing.T) {
	tr := &Transcript{}
	if len(tr.Lines()) != 0 {
		t.Fatal("An empty transcript has no lines")
	}
	tr.Write([]byte("a\n\nb"))
	if got := tr.Lines(); len(got) != 3 || got[1] != "" || got[2] != "b" {
		t.Fatalf("Bad lines: %q", got)
	}
}
