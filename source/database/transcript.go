package database

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// A Transcript records a run of a program: which program it was, what it printed, and how it
// ended. It's an io.Writer, so it can sit alongside the terminal or output file as a sink for
// print. Nothing reaches the database until Close.
type Transcript struct {
	db         *sql.DB
	driverName string
	sourceName string
	digest     string
	started    time.Time
	buf        bytes.Buffer
	closed     bool
}

// We use strings for the timestamps because the drivers don't agree about dates either. Nor do
// they agree on CREATE TABLE IF NOT EXISTS, so we ask the catalog first.
var schema = []struct {
	table string
	ddl   string
}{
	{"teo_runs", `CREATE TABLE teo_runs (
    id VARCHAR(64),
    source_name VARCHAR(255),
    source_digest VARCHAR(64),
    exit_status INTEGER,
    started VARCHAR(40),
    finished VARCHAR(40),
PRIMARY KEY (id))`},
	{"teo_output", `CREATE TABLE teo_output (
    run_id VARCHAR(64),
    line_no INTEGER,
    text VARCHAR(4000),
PRIMARY KEY (run_id, line_no))`},
}

// Each query counts the tables with the name given by its one parameter.
var catalogQueries = map[string]string{
	"sqlite":      "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
	"postgres":    "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1",
	"mysql":       "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
	"sqlserver":   "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = SCHEMA_NAME() AND table_name = @p1",
	"oracle":      "SELECT COUNT(*) FROM user_tables WHERE table_name = :1",
	"firebirdsql": "SELECT COUNT(*) FROM rdb$relations WHERE rdb$relation_name = ?",
}

// Oracle and Firebird keep unquoted identifiers in upper case.
func catalogName(driverName, table string) string {
	switch driverName {
	case "oracle", "firebirdsql":
		return strings.ToUpper(table)
	}
	return table
}

func tableExists(db *sql.DB, driverName, table string) (bool, error) {
	query, ok := catalogQueries[driverName]
	if !ok {
		return false, errors.Errorf("database: no catalog query for driver %q", driverName)
	}
	var count int
	if err := db.QueryRow(query, catalogName(driverName, table)).Scan(&count); err != nil {
		return false, errors.Wrapf(err, "database: looking for table %s", table)
	}
	return count > 0, nil
}

func NewTranscript(db *sql.DB, driver, sourceName string, source []byte) (*Transcript, error) {
	driverName, err := ResolveDriver(driver)
	if err != nil {
		return nil, err
	}
	for _, t := range schema {
		exists, err := tableExists(db, driverName, t.table)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		if _, err := db.Exec(t.ddl); err != nil {
			return nil, errors.Wrap(err, "database: creating transcript tables")
		}
	}
	return &Transcript{db: db, driverName: driverName, sourceName: sourceName,
		digest: Digest(source), started: time.Now().UTC()}, nil
}

// The blake2b-256 hash of the source, in hex.
func Digest(source []byte) string {
	sum := blake2b.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func (t *Transcript) Write(p []byte) (int, error) {
	if t.closed {
		return 0, errors.New("database: write to closed transcript")
	}
	return t.buf.Write(p)
}

// Stores the run and its output in one transaction, returning the id of the run.
func (t *Transcript) Close(exitStatus int) (string, error) {
	if t.closed {
		return "", errors.New("database: transcript already closed")
	}
	t.closed = true
	finished := time.Now().UTC()
	runId := t.runId()
	tx, err := t.db.Begin()
	if err != nil {
		return "", errors.Wrap(err, "database: starting transcript transaction")
	}
	query := "INSERT INTO teo_runs (id, source_name, source_digest, exit_status, started, finished) VALUES (" +
		t.placeholders(6) + ")"
	if _, err := tx.Exec(query, runId, t.sourceName, t.digest, exitStatus,
		t.started.Format(time.RFC3339Nano), finished.Format(time.RFC3339Nano)); err != nil {
		tx.Rollback()
		return "", errors.Wrap(err, "database: recording run")
	}
	query = "INSERT INTO teo_output (run_id, line_no, text) VALUES (" + t.placeholders(3) + ")"
	for i, line := range t.Lines() {
		if _, err := tx.Exec(query, runId, i+1, line); err != nil {
			tx.Rollback()
			return "", errors.Wrapf(err, "database: recording line %d", i+1)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "database: committing transcript")
	}
	return runId, nil
}

// The output so far, one element per line. A final line with no newline still counts.
func (t *Transcript) Lines() []string {
	output := t.buf.String()
	if output == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(output, "\n"), "\n")
}

func (t *Transcript) runId() string {
	sum := blake2b.Sum256([]byte(t.digest + t.sourceName + t.started.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:16])
}

func (t *Transcript) placeholders(n int) string {
	result := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		result = append(result, placeholder(t.driverName, i))
	}
	return strings.Join(result, ", ")
}

type OutputLine struct {
	LineNo int
	Text   string
}

// Reads back what a run printed, in order.
func (t *Transcript) Output(runId string) ([]OutputLine, error) {
	rows, err := t.db.Query("SELECT line_no, text FROM teo_output WHERE run_id = "+
		placeholder(t.driverName, 1)+" ORDER BY line_no", runId)
	if err != nil {
		return nil, errors.Wrap(err, "database: reading transcript")
	}
	defer rows.Close()

	var lines []OutputLine

	for rows.Next() {
		var line OutputLine
		if err := rows.Scan(&line.LineNo, &line.Text); err != nil {
			return nil, errors.Wrap(err, "database: reading transcript")
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// The exit status and source digest recorded for a run.
func (t *Transcript) Run(runId string) (int, string, error) {
	var status int
	var digest string
	row := t.db.QueryRow("SELECT exit_status, source_digest FROM teo_runs WHERE id = "+
		placeholder(t.driverName, 1), runId)
	if err := row.Scan(&status, &digest); err != nil {
		return 0, "", errors.Wrap(err, "database: reading run")
	}
	return status, digest, nil
}
