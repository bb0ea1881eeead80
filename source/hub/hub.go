package hub

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/teolang/teo/source/ast"
	"github.com/teolang/teo/source/dtypes"
	"github.com/teolang/teo/source/evaluator"
	"github.com/teolang/teo/source/lexer"
	"github.com/teolang/teo/source/parser"
	"github.com/teolang/teo/source/text"
	"github.com/teolang/teo/source/token"
	"github.com/teolang/teo/source/values"
)

// The hub keeps the state of a REPL session: the variables and functions defined so far persist
// from one input to the next, and an error doesn't end the session.
type Hub struct {
	ev  *evaluator.Evaluator
	env *values.Environment
	reg *evaluator.Registry
	out io.Writer
	log logrus.FieldLogger

	peek bool // If set, we show the tokens and the parsed statements before running them.
}

func New(ev *evaluator.Evaluator, out io.Writer, log logrus.FieldLogger) *Hub {
	return &Hub{
		ev:  ev,
		env: values.NewEnvironment(),
		reg: evaluator.NewRegistry(),
		out: out,
		log: log,
	}
}

var blankOrComment = regexp.MustCompile(`^\s*(|\/\/.*)$`)

// Does whatever the input says. Returns true with an exit code if the session should end.
func (hub *Hub) Do(input string) (bool, int) {
	if blankOrComment.MatchString(input) {
		return false, 0
	}

	// We may be talking to the hub itself.

	hubWords := strings.Fields(input)
	if hubWords[0] == "hub" {
		if len(hubWords) == 1 {
			hub.WriteError("you need to say what you want the hub to do.")
			return false, 0
		}
		return hub.DoHubCommand(hubWords[1], hubWords[2:]), 0
	}

	// Otherwise, it's code.

	if hub.peek {
		hub.WriteString(lexer.String(lexer.NewLexer(text.REPL_SOURCE, input)))
	}
	statements, err := parser.ParseWithLogger(text.REPL_SOURCE, input, hub.log)
	if err != nil {
		text.ReportError(hub.out, err)
		return false, 0
	}
	if hub.peek {
		hub.WriteString(text.Cyan(ast.String(statements)) + "\n")
	}
	outcome := hub.ev.Run(statements, hub.env, hub.reg)
	switch outcome.Status {
	case evaluator.FAILED:
		text.ReportError(hub.out, outcome.Err)
	case evaluator.RETURNED:
		hub.WriteString("Exit status " + strconv.Itoa(outcome.ExitCode) + "\n")
		return true, outcome.ExitCode
	}
	return false, 0
}

func (hub *Hub) DoHubCommand(verb string, args []string) bool {
	switch verb {
	case "functions":
		for _, name := range hub.reg.Names() {
			fn, _ := hub.reg.Get(name)
			hub.WriteString(text.BULLET + name + fn.Sig.String() + "\n")
		}
	case "help":
		hub.help()
	case "peek":
		hub.peek = !hub.peek
		hub.WriteString(text.Green("OK") + "\n")
	case "quit":
		hub.quit()
		return true
	case "reset":
		hub.env = values.NewEnvironment()
		hub.reg = evaluator.NewRegistry()
		hub.WriteString(text.Green("OK") + "\n")
	case "values":
		for _, name := range hub.env.Names() {
			v, _ := hub.env.Get(name)
			hub.WriteString(text.BULLET + name + " = " + v.Inspect() + "\n")
		}
	default:
		hub.WriteError("the hub doesn't know what " + text.Emph(verb) + " means.")
	}
	return false
}

var helpTopics = [][2]string{
	{"hub functions", "lists the functions defined so far"},
	{"hub help", "shows this message"},
	{"hub peek", "turns on or off showing the tokens and parsed statements of each input"},
	{"hub quit", "ends the session"},
	{"hub reset", "forgets all variables and functions"},
	{"hub values", "lists the variables and their values"},
}

func (hub *Hub) help() {
	hub.WriteString("\nHub commands are:\n\n")
	for _, v := range helpTopics {
		hub.WriteString(text.BULLET + text.Cyan(v[0]) + " " + v[1] + "\n")
	}
	hub.WriteString("\n")
}

func (hub *Hub) quit() {
	hub.WriteString(text.Green("OK") + "\n" + text.Logo() + "Thank you for using Teo. Have a nice day!\n\n")
}

func (hub *Hub) WriteError(s string) {
	hub.WriteString(text.Red("Hub error: ") + s + "\n")
}

func (hub *Hub) WriteString(s string) {
	io.WriteString(hub.out, s)
}

var openerOf = map[token.TokenType]token.TokenType{
	token.RPAREN: token.LPAREN,
	token.RBRACE: token.LBRACE,
	token.RBRACK: token.LBRACK,
}

// Whether the input so far has an unclosed bracket, in which case we should read another line
// before trying to parse it. Mismatched brackets are left for the parser to complain about.
func NeedsMore(input string) bool {
	brackets := dtypes.NewStack[token.TokenType]()
	l := lexer.NewLexer(text.REPL_SOURCE, input)
	for tok := l.NextNonCommentToken(); tok.Type != token.EOF; tok = l.NextNonCommentToken() {
		switch tok.Type {
		case token.ILLEGAL:
			return false
		case token.LPAREN, token.LBRACE, token.LBRACK:
			brackets.Push(tok.Type)
		case token.RPAREN, token.RBRACE, token.RBRACK:
			if open, ok := brackets.HeadValue(); !ok || open != openerOf[tok.Type] {
				return false
			}
			brackets.Pop()
		}
	}
	return brackets.Len() > 0
}
