package test_helper

import (
	"os"
	"testing"

	"github.com/teolang/teo/source/text"
)

// Auxiliary types and functions for testing the parser and evaluator.

type TestItem struct {
	Input string
	Want  string
}

// Set TEO_SHOW_TESTS to see each input as it runs.
var showTests = os.Getenv("TEO_SHOW_TESTS") != ""

func RunTest(t *testing.T, tests []TestItem, F func(s string) (string, error)) {
	t.Helper()
	for _, test := range tests {
		if showTests {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		got, e := F(test.Input)
		if e != nil {
			t.Fatalf("Test failed with input %s | Wanted : %s | Got error : %s", test.Input, test.Want, e.Error())
		}
		if !(test.Want == got) {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}

// Here Want is the id of the error that the input should produce.
func RunErrorTest(t *testing.T, tests []TestItem, F func(s string) (string, error)) {
	t.Helper()
	for _, test := range tests {
		if showTests {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		got, e := F(test.Input)
		if e == nil {
			t.Fatalf("Test failed with input %s | Wanted error : %s | Got : %s", test.Input, test.Want, got)
		}
		if got != test.Want {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}
