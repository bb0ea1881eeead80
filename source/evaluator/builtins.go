package evaluator

import (
	"io"
	"strconv"
	"strings"

	"github.com/teolang/teo/source/stringsx"
	"github.com/teolang/teo/source/token"
	"github.com/teolang/teo/source/values"
)

// The built-in functions. Their names can't be used for user-defined functions.

type builtin struct {
	arity int // -1 for variadic.
	fn    func(ev *Evaluator, tok *token.Token, args []values.Value) (values.Value, *unwind)
}

var builtins = map[string]builtin{
	"input":  {0, builtinInput},
	"inputf": {1, builtinInputf},
	"print":  {-1, builtinPrint},
	"return": {1, builtinReturn},
	"split":  {2, builtinSplit},
}

func isBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func builtinPrint(ev *Evaluator, tok *token.Token, args []values.Value) (values.Value, *unwind) {
	for _, arg := range args {
		line := arg.Render() + "\n"
		if _, err := io.WriteString(ev.Out, line); err != nil {
			return values.NO_VALUE, fail("eval/output", tok, err)
		}
		if ev.Echo != nil {
			if _, err := io.WriteString(ev.Echo, line); err != nil {
				return values.NO_VALUE, fail("eval/output", tok, err)
			}
		}
	}
	return values.NO_VALUE, nil
}

func builtinReturn(ev *Evaluator, tok *token.Token, args []values.Value) (values.Value, *unwind) {
	return values.NO_VALUE, &unwind{returned: true, value: args[0], tok: tok}
}

func builtinInput(ev *Evaluator, tok *token.Token, args []values.Value) (values.Value, *unwind) {
	line, u := ev.readLine(tok)
	if u != nil {
		return values.NO_VALUE, u
	}
	return values.Text(line), nil
}

// The format is a whitespace-separated list of directives, each of which reads one line.
func builtinInputf(ev *Evaluator, tok *token.Token, args []values.Value) (values.Value, *unwind) {
	format, ok := args[0].AsText()
	if !ok {
		return values.NO_VALUE, fail("eval/type/inputf", tok, args[0].TypeName())
	}
	directives := strings.Fields(format)
	for _, directive := range directives {
		switch directive {
		case "%Number", "%Int", "%String":
		default:
			return values.NO_VALUE, fail("eval/input/format", tok, directive)
		}
	}
	result := make([]values.Value, 0, len(directives))
	for _, directive := range directives {
		line, u := ev.readLine(tok)
		if u != nil {
			return values.NO_VALUE, u
		}
		if directive == "%String" {
			result = append(result, values.Text(line))
			continue
		}
		i, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return values.NO_VALUE, fail("eval/input/number", tok, line)
		}
		result = append(result, values.Int(i))
	}
	return values.Array(result...), nil
}

// Every character of the second argument is a delimiter.
func builtinSplit(ev *Evaluator, tok *token.Token, args []values.Value) (values.Value, *unwind) {
	text, ok := args[0].AsText()
	if !ok {
		return values.NO_VALUE, fail("eval/type/split", tok, "text", args[0].TypeName())
	}
	delimiters, ok := args[1].AsText()
	if !ok {
		return values.NO_VALUE, fail("eval/type/split", tok, "delimiters", args[1].TypeName())
	}
	parts := stringsx.SplitChars(text, delimiters)
	result := make([]values.Value, 0, len(parts))
	for _, part := range parts {
		result = append(result, values.Text(part))
	}
	return values.Array(result...), nil
}

func (ev *Evaluator) readLine(tok *token.Token) (string, *unwind) {
	line, err := ev.Input.ReadLine()
	if err == io.EOF {
		return "", fail("eval/input/eof", tok)
	}
	if err != nil {
		return "", fail("eval/input/read", tok, err)
	}
	return line, nil
}
