package hub

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/teolang/teo/source/evaluator"
	"github.com/teolang/teo/source/settings"
	"github.com/teolang/teo/source/text"
)

type scriptedReader struct {
	lines   []string
	prompts []string
}

func (s *scriptedReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedReader) SetPrompt(p string) {
	s.prompts = append(s.prompts, p)
}

func newTestHub() (*Hub, *bytes.Buffer) {
	text.SetColor(false)
	var out bytes.Buffer
	ev := evaluator.New(settings.Default(), &out)
	return New(ev, &out, settings.DiscardLogger()), &out
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{`x = 1;`, false},
		{`def f(a) {`, true},
		{"def f(a) {\n  print(a);\n};", false},
		{`x = [1, 2`, true},
		{`x = ]`, false},
		{`f([1, 2)`, false},
		{`if (x) { y = [1, 2); `, false},
		{`x = "{"`, false},
		{`// {`, false},
	}
	for _, test := range tests {
		if got := NeedsMore(test.input); got != test.want {
			t.Fatalf("Input %q | Wanted : %v | Got : %v", test.input, test.want, got)
		}
	}
}

func TestSessionKeepsState(t *testing.T) {
	hub, out := newTestHub()
	rline := &scriptedReader{lines: []string{
		"def double(x) {",
		"    return(x * 2);",
		"};",
		"y = double(21);",
		"print(y);",
	}}
	code := StartHub(hub, rline)
	if code != 0 {
		t.Fatalf("Wanted exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "42\n") {
		t.Fatalf("Expected 42 in the output, got %q", out.String())
	}
	if rline.prompts[1] != text.CONTINUE || rline.prompts[3] != text.PROMPT {
		t.Fatalf("Bad prompts: %q", rline.prompts)
	}
}

func TestErrorsDontEndTheSession(t *testing.T) {
	hub, out := newTestHub()
	rline := &scriptedReader{lines: []string{"print(1 / 0);", "x = ;", "print(7);", "return(4);", "print(8);"}}
	code := StartHub(hub, rline)
	if code != 4 {
		t.Fatalf("Wanted exit code 4, got %d", code)
	}
	got := out.String()
	for _, want := range []string{"[DivisionByZero]", "[ParseError]", "7\n", "Exit status 4\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Expected %q in the output, got %q", want, got)
		}
	}
	if strings.Contains(got, "8\n") {
		t.Fatalf("Nothing should run after return, got %q", got)
	}
}

func TestHubCommands(t *testing.T) {
	hub, out := newTestHub()
	hub.Do("x = [1, \"a\"]; def f(a: Number) { };")
	hub.Do("hub values")
	hub.Do("hub functions")
	if !strings.Contains(out.String(), `x = [1, "a"]`) || !strings.Contains(out.String(), "f(a Number)") {
		t.Fatalf("Bad listing: %q", out.String())
	}
	hub.Do("hub reset")
	out.Reset()
	hub.Do("print(x);")
	if !strings.Contains(out.String(), "[UndefinedVariable]") {
		t.Fatalf("Reset should forget x, got %q", out.String())
	}
	out.Reset()
	hub.Do("hub frobnicate")
	if !strings.Contains(out.String(), "Hub error: ") {
		t.Fatalf("Expected a hub error, got %q", out.String())
	}
	if quit, _ := hub.Do("hub quit"); !quit {
		t.Fatal("hub quit should end the session")
	}
}

func TestPeek(t *testing.T) {
	hub, out := newTestHub()
	hub.Do("hub peek")
	out.Reset()
	hub.Do("print(1 + 2 * 3);")
	got := out.String()
	if !strings.Contains(got, `IDENT "print" @1:0`) || !strings.Contains(got, "print((1 + (2 * 3)));") || !strings.HasSuffix(got, "7\n") {
		t.Fatalf("Bad peek: %q", got)
	}
}
