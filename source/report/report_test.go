package report

import (
	"strings"
	"testing"

	"github.com/teolang/teo/source/token"
)

func TestCreateErr(t *testing.T) {
	tok := &token.Token{Type: token.DIVIDE, Literal: "/", Line: 3, ChStart: 7, ChEnd: 8, Source: "main.teo"}
	e := CreateErr("eval/div/zero", tok)
	if e.Kind != DivisionByZero {
		t.Fatalf("Expected kind DivisionByZero but got %v", e.Kind)
	}
	want := "division by zero at line 3:7 of 'main.teo'"
	if e.Error() != want {
		t.Fatalf("Wanted : %s | Got : %s", want, e.Error())
	}
}

func TestCreateErrWithArgs(t *testing.T) {
	tests := []struct {
		id   string
		args []any
		kind Kind
		want string
	}{
		{"eval/func/arity", []any{"f", 2, 3, "(a Number, b Number)"}, ArityMismatch,
			"function 'f(a Number, b Number)' takes 2 arguments, but was given 3 arguments"},
		{"eval/builtin/arity", []any{"input", 0, 1}, ArityMismatch,
			"built-in 'input' takes 0 arguments, but was given 1 argument"},
		{"eval/index/range", []any{5, 3}, IndexOutOfBounds,
			"index '5' is out of bounds for an array of length 3"},
		{"parse/expected", []any{";", "print"}, ParseError, "expected ';', found 'print'"},
		{"eval/var/undefined", []any{"zort"}, UndefinedVariable, "undefined variable 'zort'"},
	}
	for _, test := range tests {
		e := CreateErr(test.id, nil, test.args...)
		if e.Kind != test.kind {
			t.Fatalf("Error %s has kind %v, wanted %v", test.id, e.Kind, test.kind)
		}
		if e.Message != test.want {
			t.Fatalf("Error %s | Wanted : %s | Got : %s", test.id, test.want, e.Message)
		}
	}
}

func TestUnknownErrorId(t *testing.T) {
	e := CreateErr("no/such/error", nil)
	if e.Kind != UnhandledNodeKind || !strings.Contains(e.Message, "no/such/error") {
		t.Fatalf("Unexpected error for unknown id: %v %s", e.Kind, e.Message)
	}
}

func TestThrowAndTrace(t *testing.T) {
	ers := Errors{}
	ers = Throw("lex/quote", ers, &token.Token{Line: 1})
	if len(ers) != 1 || ers[0].Kind != ParseError {
		t.Fatalf("Throw did not append a parse error")
	}
	ers[0].AddToTrace(&token.Token{Literal: "f", Line: 4})
	if len(ers[0].Trace) != 1 || ers[0].Trace[0].Literal != "f" {
		t.Fatalf("Trace was not recorded")
	}
	if ParseError.String() != "ParseError" || Kind(99).String() != "Kind(99)" {
		t.Fatalf("Kind names are wrong")
	}
}
