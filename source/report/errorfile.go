package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/teolang/teo/source/token"
)

// A map from error identifiers to the kind of the error and a function supplying its message.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Major categories are eval, lex, and parse.
//
// Two otherwise identical errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

type ErrorCreator struct {
	Kind    Kind
	Message func(tok *token.Token, args ...any) string
}

var ErrorCreatorMap = map[string]ErrorCreator{

	"eval/arith/overflow": {
		Kind: IntegerOverflow,
		Message: func(tok *token.Token, args ...any) string {
			if len(args) == 1 {
				return fmt.Sprintf("negating %v overflows Int", args[0])
			}
			return fmt.Sprintf("%v %v %v overflows Int", args[0], args[1], args[2])
		},
	},

	"eval/builtin/arity": {
		Kind: ArityMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("built-in %v takes %v, but was given %v", emph(args[0]),
				describeCount(args[1].(int)), describeCount(args[2].(int)))
		},
	},

	"eval/depth": {
		Kind: RecursionLimitExceeded,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("call to %v exceeds the maximum call depth of %v", emph(args[0]), args[1])
		},
	},

	"eval/div/zero": {
		Kind: DivisionByZero,
		Message: func(tok *token.Token, args ...any) string {
			return "division by zero"
		},
	},

	"eval/func/arity": {
		Kind: ArityMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("function %v takes %v, but was given %v", emph(args[0].(string)+args[3].(string)),
				describeCount(args[1].(int)), describeCount(args[2].(int)))
		},
	},

	"eval/func/builtin": {
		Kind: DuplicateFunctionDefinition,
		Message: func(tok *token.Token, args ...any) string {
			return "can't define function " + emph(args[0]) + " because a built-in has that name"
		},
	},

	"eval/func/duplicate": {
		Kind: DuplicateFunctionDefinition,
		Message: func(tok *token.Token, args ...any) string {
			return "function " + emph(args[0]) + " has already been defined"
		},
	},

	"eval/func/undefined": {
		Kind: UndefinedFunction,
		Message: func(tok *token.Token, args ...any) string {
			return "undefined function " + emph(args[0])
		},
	},

	"eval/index/range": {
		Kind: IndexOutOfBounds,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("index %v is out of bounds for an array of length %v", emph(args[0]), args[1])
		},
	},

	"eval/input/eof": {
		Kind: InputError,
		Message: func(tok *token.Token, args ...any) string {
			return "no more input to read"
		},
	},

	"eval/input/format": {
		Kind: InputError,
		Message: func(tok *token.Token, args ...any) string {
			return "unknown directive " + emph(args[0]) + " in input format; expected " +
				emph("%Number") + ", " + emph("%Int") + " or " + emph("%String")
		},
	},

	"eval/input/number": {
		Kind: InputError,
		Message: func(tok *token.Token, args ...any) string {
			return "can't read " + emph(args[0]) + " as a number"
		},
	},

	"eval/input/read": {
		Kind: InputError,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("error reading input: %v", args[0])
		},
	},

	"eval/node": {
		Kind: UnhandledNodeKind,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("the evaluator can't handle a node of type %v", emph(args[0]))
		},
	},

	"eval/novalue/arg": {
		Kind: NoValue,
		Message: func(tok *token.Token, args ...any) string {
			return "argument " + emph(args[0]) + " has no value"
		},
	},

	"eval/novalue/assign": {
		Kind: NoValue,
		Message: func(tok *token.Token, args ...any) string {
			return "right-hand side of assignment to " + emph(args[0]) + " has no value"
		},
	},

	"eval/novalue/operand": {
		Kind: NoValue,
		Message: func(tok *token.Token, args ...any) string {
			return "operand " + emph(args[0]) + " has no value"
		},
	},

	"eval/output": {
		Kind: OutputError,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("error writing output: %v", args[0])
		},
	},

	"eval/type/arith": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("can't apply %v to values of type %v and %v", emph(args[0]), emph(args[1]), emph(args[2]))
		},
	},

	"eval/type/cond": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "condition should be of type " + emph("Int") + ", not " + emph(args[0])
		},
	},

	"eval/type/for": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "can't iterate over a value of type " + emph(args[0])
		},
	},

	"eval/type/index/key": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "index should be of type " + emph("Int") + ", not " + emph(args[0])
		},
	},

	"eval/type/index/target/a": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "can't index a value of type " + emph(args[0])
		},
	},

	"eval/type/index/target/b": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "can't assign to an index of a value of type " + emph(args[0])
		},
	},

	"eval/type/inputf": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "format of " + emph("inputf") + " should be of type " + emph("String") + ", not " + emph(args[0])
		},
	},

	"eval/type/negate": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "can't negate a value of type " + emph(args[0])
		},
	},

	"eval/type/return": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "exit status should be of type " + emph("Int") + ", not " + emph(args[0])
		},
	},

	"eval/type/split": {
		Kind: TypeMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("%v of %v should be of type %v, not %v", args[0], emph("split"), emph("String"), emph(args[1]))
		},
	},

	"eval/var/undefined": {
		Kind: UndefinedVariable,
		Message: func(tok *token.Token, args ...any) string {
			return "undefined variable " + emph(args[0])
		},
	},

	"lex/ill": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			r := args[0].(rune)
			if !unicode.IsPrint(r) {
				return fmt.Sprintf("illegal character %U", r)
			}
			return fmt.Sprintf("illegal character %v", emph(string(r)))
		},
	},

	"lex/num": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "invalid number literal " + emph(args[0])
		},
	},

	"lex/quote": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "string literal is not closed before the end of the line"
		},
	},

	"parse/eof": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected end of input; expected " + emph(args[0])
		},
	},

	"parse/expected": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "expected " + emph(args[0]) + ", found " + emph(args[1])
		},
	},

	"parse/int": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "invalid integer literal " + emph(args[0])
		},
	},

	"parse/lhs": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "can't assign to " + emph(args[0])
		},
	},

	"parse/prefix": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "can't start an expression with " + emph(args[0])
		},
	},
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}

func describeCount(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}
