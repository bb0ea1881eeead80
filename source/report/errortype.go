package report

import (
	"fmt"

	"github.com/teolang/teo/source/token"
)

// The broad class of an error. Embedding callers switch on this rather than on the error id,
// which is finer-grained and may change.
type Kind int

const (
	ParseError Kind = iota
	UndefinedVariable
	UndefinedFunction
	ArityMismatch
	DuplicateFunctionDefinition
	TypeMismatch
	DivisionByZero
	IndexOutOfBounds
	UnhandledNodeKind
	RecursionLimitExceeded
	NoValue
	InputError
	OutputError
	IntegerOverflow
)

var kindNames = []string{"ParseError", "UndefinedVariable", "UndefinedFunction", "ArityMismatch",
	"DuplicateFunctionDefinition", "TypeMismatch", "DivisionByZero", "IndexOutOfBounds",
	"UnhandledNodeKind", "RecursionLimitExceeded", "NoValue", "InputError", "OutputError",
	"IntegerOverflow"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Error struct {
	ErrorId string
	Kind    Kind
	Message string
	Args    []any
	Trace   []*token.Token
	Token   *token.Token
}

func (e *Error) Error() string {
	return e.Message + DescribePos(e.Token)
}

// Call sites are appended as the error unwinds through function calls.
func (e *Error) AddToTrace(tok *token.Token) {
	e.Trace = append(e.Trace, tok)
}

type Errors []*Error

// Errors are created through the ErrorCreatorMap so that the same id always gets the same kind and
// wording.
func CreateErr(errorId string, tok *token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorId]
	if !ok {
		return &Error{ErrorId: "report/unknown", Kind: UnhandledNodeKind,
			Message: "unknown error id " + emph(errorId), Token: tok, Args: args}
	}
	return &Error{ErrorId: errorId, Kind: creator.Kind, Message: creator.Message(tok, args...),
		Args: args, Token: tok}
}

func Throw(errorId string, ers Errors, tok *token.Token, args ...any) Errors {
	return append(ers, CreateErr(errorId, tok, args...))
}

func DescribePos(tok *token.Token) string {
	if tok == nil || tok.Line == 0 {
		return ""
	}
	result := fmt.Sprintf(" at line %d:%d", tok.Line, tok.ChStart)
	if tok.ChEnd > tok.ChStart+1 {
		result = result + fmt.Sprintf("-%d", tok.ChEnd)
	}
	if tok.Source != "" {
		result = result + " of " + emph(tok.Source)
	}
	return result
}
