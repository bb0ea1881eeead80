package console

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/lmorg/readline"
	"github.com/pkg/errors"
)

func TestReader(t *testing.T) {
	src := NewReader(strings.NewReader("42\r\nhello world\nlast"))
	for _, want := range []string{"42", "hello world", "last"} {
		got, err := src.ReadLine()
		if err != nil || got != want {
			t.Fatalf("Wanted : %q | Got : %q, %v", want, got, err)
		}
	}
	if _, err := src.ReadLine(); err != io.EOF {
		t.Fatalf("Wanted io.EOF, got %v", err)
	}
}

func TestEmpty(t *testing.T) {
	if _, err := Empty().ReadLine(); err != io.EOF {
		t.Fatalf("Wanted io.EOF, got %v", err)
	}
}

func TestAutoOnAFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "input")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	f.WriteString("line\n")
	f.Seek(0, io.SeekStart)
	got, err := Auto(f, "? ").ReadLine()
	if err != nil || got != "line" {
		t.Fatalf("Wanted : %q | Got : %q, %v", "line", got, err)
	}
}

func TestTerminalErrors(t *testing.T) {
	if err := terminalError(readline.EOF); err != io.EOF {
		t.Fatalf("Ctrl-D should be the end of input, got %v", err)
	}
	if err := terminalError(io.EOF); err != io.EOF {
		t.Fatalf("io.EOF should pass through, got %v", err)
	}
	err := terminalError(readline.CtrlC)
	if err == io.EOF || errors.Cause(err) != readline.CtrlC {
		t.Fatalf("Ctrl-C should be reported as a read failure, got %v", err)
	}
}
