package evaluator

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"src.elv.sh/pkg/persistent/vector"

	"github.com/teolang/teo/source/ast"
	"github.com/teolang/teo/source/console"
	"github.com/teolang/teo/source/report"
	"github.com/teolang/teo/source/settings"
	"github.com/teolang/teo/source/token"
	"github.com/teolang/teo/source/values"
)

// A tree-walking evaluator. Nothing in here terminates the process: a run ends with an Outcome,
// and it's up to the caller what to do about it.

type Status int

const (
	COMPLETED Status = iota // Ran off the end of the statements.
	RETURNED                // Stopped at a return.
	FAILED
)

var statusNames = []string{"completed", "returned", "failed"}

func (s Status) String() string {
	return statusNames[s]
}

type Outcome struct {
	Status   Status
	Value    values.Value // The argument of return, if there was one.
	ExitCode int
	Err      *report.Error
}

type Evaluator struct {
	Out          io.Writer
	Echo         io.Writer // If not nil, everything printed to Out is also written here.
	Input        console.LineSource
	Log          logrus.FieldLogger
	MaxCallDepth int
}

// Prints are echoed to stdout unless the config turns that off or out is stdout already.
func New(cfg *settings.Config, out io.Writer) *Evaluator {
	ev := &Evaluator{
		Out:          out,
		Input:        console.NewReader(os.Stdin),
		Log:          settings.DiscardLogger(),
		MaxCallDepth: cfg.MaxCallDepth,
	}
	if cfg.Echo && out != io.Writer(os.Stdout) {
		ev.Echo = os.Stdout
	}
	return ev
}

// Runs the statements with the default settings, reading input from stdin and echoing to stdout.
func Run(statements []ast.Node, env *values.Environment, registry *Registry, out io.Writer) Outcome {
	return New(settings.Default(), out).Run(statements, env, registry)
}

// The environment and registry are updated in place, so that the REPL can keep them from one
// line to the next.
func (ev *Evaluator) Run(statements []ast.Node, env *values.Environment, registry *Registry) Outcome {
	u := ev.execStatements(statements, &frame{env: env, reg: registry})
	switch {
	case u == nil:
		return Outcome{Status: COMPLETED, Value: values.NO_VALUE}
	case u.err != nil:
		ev.Log.WithField("error", u.err.ErrorId).Debug("run failed")
		return Outcome{Status: FAILED, Value: values.NO_VALUE, Err: u.err}
	}
	code, ok := u.value.AsInt()
	if !ok {
		return Outcome{Status: FAILED, Value: values.NO_VALUE,
			Err: report.CreateErr("eval/type/return", u.tok, u.value.TypeName())}
	}
	return Outcome{Status: RETURNED, Value: u.value, ExitCode: code}
}

// The state belonging to one function call, or to the top level of the program.
type frame struct {
	env   *values.Environment
	reg   *Registry
	depth int
}

// Why evaluation stopped before the end of the statements: either we hit a return, or there was
// an error. A nil *unwind means carry on.
type unwind struct {
	returned bool
	value    values.Value
	tok      *token.Token
	err      *report.Error
}

func fail(errorId string, tok *token.Token, args ...any) *unwind {
	return &unwind{err: report.CreateErr(errorId, tok, args...)}
}

func (ev *Evaluator) execStatements(statements []ast.Node, fr *frame) *unwind {
	for _, stmt := range statements {
		if _, u := ev.eval(stmt, fr); u != nil {
			return u
		}
	}
	return nil
}

func (ev *Evaluator) eval(node ast.Node, fr *frame) (values.Value, *unwind) {
	switch node := node.(type) {

	// Statements

	case *ast.Assignment:
		right, u := ev.evalValue(node.Value, fr, "eval/novalue/assign", node.Name)
		if u != nil {
			return values.NO_VALUE, u
		}
		fr.env.Set(node.Name, right)
		return values.NO_VALUE, nil

	case *ast.ForStatement:
		return values.NO_VALUE, ev.evalFor(node, fr)

	case *ast.FunctionDefinition:
		if isBuiltin(node.Name) {
			return values.NO_VALUE, fail("eval/func/builtin", &node.Token, node.Name)
		}
		if !fr.reg.Define(node) {
			return values.NO_VALUE, fail("eval/func/duplicate", &node.Token, node.Name)
		}
		return values.NO_VALUE, nil

	case *ast.IfStatement:
		return values.NO_VALUE, ev.evalIf(node, fr)

	case *ast.IndexAssignment:
		return values.NO_VALUE, ev.evalIndexAssignment(node, fr)

	// Expressions

	case *ast.ArrayLiteral:
		vec := vector.Empty
		for _, el := range node.Elements {
			v, u := ev.evalValue(el, fr, "eval/novalue/operand", el.String())
			if u != nil {
				return values.NO_VALUE, u
			}
			vec = vec.Conj(v)
		}
		return values.FromVector(vec), nil

	case *ast.BooleanLiteral:
		return values.Bool(node.Value), nil

	case *ast.FunctionCall:
		return ev.evalCall(node, fr)

	case *ast.Identifier:
		if v, ok := fr.env.Get(node.Value); ok {
			return v, nil
		}
		return values.NO_VALUE, fail("eval/var/undefined", &node.Token, node.Value)

	case *ast.IndexExpression:
		left, u := ev.evalValue(node.Left, fr, "eval/novalue/operand", node.Left.String())
		if u != nil {
			return values.NO_VALUE, u
		}
		index, u := ev.evalIndex(node.Index, fr)
		if u != nil {
			return values.NO_VALUE, u
		}
		vec, ok := left.AsArray()
		if !ok {
			return values.NO_VALUE, fail("eval/type/index/target/a", &node.Token, left.TypeName())
		}
		if index < 0 || index >= vec.Len() {
			return values.NO_VALUE, fail("eval/index/range", node.Index.GetToken(), index, vec.Len())
		}
		el, _ := vec.Index(index)
		return el.(values.Value), nil

	case *ast.InfixExpression:
		left, u := ev.evalValue(node.Left, fr, "eval/novalue/operand", node.Left.String())
		if u != nil {
			return values.NO_VALUE, u
		}
		right, u := ev.evalValue(node.Right, fr, "eval/novalue/operand", node.Right.String())
		if u != nil {
			return values.NO_VALUE, u
		}
		return evalInfixExpression(&node.Token, node.Operator, left, right)

	case *ast.IntegerLiteral:
		return values.Int(node.Value), nil

	case *ast.PrefixExpression:
		right, u := ev.evalValue(node.Right, fr, "eval/novalue/operand", node.Right.String())
		if u != nil {
			return values.NO_VALUE, u
		}
		i, ok := right.AsInt()
		if !ok {
			return values.NO_VALUE, fail("eval/type/negate", &node.Token, right.TypeName())
		}
		if i == math.MinInt {
			return values.NO_VALUE, fail("eval/arith/overflow", &node.Token, i)
		}
		return values.Int(-i), nil

	case *ast.StringLiteral:
		return values.Text(node.Value), nil
	}
	tok := &token.Token{}
	if node != nil {
		tok = node.GetToken()
	}
	return values.NO_VALUE, fail("eval/node", tok, fmt.Sprintf("%T", node))
}

// Evaluates something which has to have a value, e.g. an operand or an argument.
func (ev *Evaluator) evalValue(node ast.Node, fr *frame, errorId string, describe string) (values.Value, *unwind) {
	v, u := ev.eval(node, fr)
	if u != nil {
		return values.NO_VALUE, u
	}
	if v.IsNoValue() {
		return values.NO_VALUE, fail(errorId, node.GetToken(), describe)
	}
	return v, nil
}

func (ev *Evaluator) evalIndex(node ast.Node, fr *frame) (int, *unwind) {
	v, u := ev.evalValue(node, fr, "eval/novalue/operand", node.String())
	if u != nil {
		return 0, u
	}
	i, ok := v.AsInt()
	if !ok {
		return 0, fail("eval/type/index/key", node.GetToken(), v.TypeName())
	}
	return i, nil
}

func evalInfixExpression(tok *token.Token, operator string, left, right values.Value) (values.Value, *unwind) {
	switch operator {
	case "==":
		return values.Bool(values.Equal(left, right)), nil
	case "!=":
		return values.Bool(!values.Equal(left, right)), nil
	}
	l, lok := left.AsInt()
	r, rok := right.AsInt()
	if !(lok && rok) {
		return values.NO_VALUE, fail("eval/type/arith", tok, operator, left.TypeName(), right.TypeName())
	}
	switch operator {
	case "+":
		sum := l + r
		if (r > 0 && sum < l) || (r < 0 && sum > l) {
			return values.NO_VALUE, fail("eval/arith/overflow", tok, l, operator, r)
		}
		return values.Int(sum), nil
	case "-":
		diff := l - r
		if (r > 0 && diff > l) || (r < 0 && diff < l) {
			return values.NO_VALUE, fail("eval/arith/overflow", tok, l, operator, r)
		}
		return values.Int(diff), nil
	case "*":
		product := l * r
		if l != 0 && (product/l != r || (l == -1 && r == math.MinInt)) {
			return values.NO_VALUE, fail("eval/arith/overflow", tok, l, operator, r)
		}
		return values.Int(product), nil
	case "/":
		if r == 0 {
			return values.NO_VALUE, fail("eval/div/zero", tok)
		}
		if l == math.MinInt && r == -1 {
			return values.NO_VALUE, fail("eval/arith/overflow", tok, l, operator, r)
		}
		return values.Int(l / r), nil
	case "<":
		return values.Bool(l < r), nil
	case ">":
		return values.Bool(l > r), nil
	case "<=":
		return values.Bool(l <= r), nil
	case ">=":
		return values.Bool(l >= r), nil
	}
	return values.NO_VALUE, fail("eval/type/arith", tok, operator, left.TypeName(), right.TypeName())
}

func (ev *Evaluator) evalIf(node *ast.IfStatement, fr *frame) *unwind {
	cond, u := ev.evalValue(node.Condition, fr, "eval/novalue/operand", node.Condition.String())
	if u != nil {
		return u
	}
	i, ok := cond.AsInt()
	if !ok {
		return fail("eval/type/cond", node.Condition.GetToken(), cond.TypeName())
	}
	if i != 0 {
		return ev.execStatements(node.Consequence.Statements, fr)
	}
	if node.Alternative != nil {
		return ev.execStatements(node.Alternative.Statements, fr)
	}
	return nil
}

// The loop ranges over the value the iterable had when the loop started, since arrays are values.
func (ev *Evaluator) evalFor(node *ast.ForStatement, fr *frame) *unwind {
	iterable, u := ev.evalValue(node.Iterable, fr, "eval/novalue/operand", node.Iterable.String())
	if u != nil {
		return u
	}
	it := values.MakeIterator(iterable)
	if it == nil {
		return fail("eval/type/for", node.Iterable.GetToken(), iterable.TypeName())
	}
	for it.Unfinished() {
		fr.env.Set(node.Variable, it.GetValue())
		if u := ev.execStatements(node.Body.Statements, fr); u != nil {
			return u
		}
	}
	return nil
}

// For x[i][j] = v we find the root variable x, evaluate the indices i and j in that order and then
// v, and finally rebind x to a copy of the array with the element replaced.
func (ev *Evaluator) evalIndexAssignment(node *ast.IndexAssignment, fr *frame) *unwind {
	indexNodes := []ast.Node{node.Index}
	target := node.Target
	for {
		ie, ok := target.(*ast.IndexExpression)
		if !ok {
			break
		}
		indexNodes = append([]ast.Node{ie.Index}, indexNodes...)
		target = ie.Left
	}
	root, ok := target.(*ast.Identifier)
	if !ok {
		return fail("eval/node", target.GetToken(), fmt.Sprintf("%T", target))
	}
	container, ok := fr.env.Get(root.Value)
	if !ok {
		return fail("eval/var/undefined", &root.Token, root.Value)
	}
	indices := make([]int, 0, len(indexNodes))
	for _, indexNode := range indexNodes {
		i, u := ev.evalIndex(indexNode, fr)
		if u != nil {
			return u
		}
		indices = append(indices, i)
	}
	v, u := ev.evalValue(node.Value, fr, "eval/novalue/assign", node.Target.String()+"["+node.Index.String()+"]")
	if u != nil {
		return u
	}
	result, u := assocPath(container, indices, indexNodes, v)
	if u != nil {
		return u
	}
	fr.env.Set(root.Value, result)
	return nil
}

func assocPath(container values.Value, indices []int, indexNodes []ast.Node, v values.Value) (values.Value, *unwind) {
	vec, ok := container.AsArray()
	if !ok {
		return values.NO_VALUE, fail("eval/type/index/target/b", indexNodes[0].GetToken(), container.TypeName())
	}
	i := indices[0]
	if i < 0 || i >= vec.Len() {
		return values.NO_VALUE, fail("eval/index/range", indexNodes[0].GetToken(), i, vec.Len())
	}
	if len(indices) == 1 {
		return values.FromVector(vec.Assoc(i, v)), nil
	}
	inner, _ := vec.Index(i)
	newInner, u := assocPath(inner.(values.Value), indices[1:], indexNodes[1:], v)
	if u != nil {
		return values.NO_VALUE, u
	}
	return values.FromVector(vec.Assoc(i, newInner)), nil
}

func (ev *Evaluator) evalCall(node *ast.FunctionCall, fr *frame) (values.Value, *unwind) {
	if builtin, ok := builtins[node.Name]; ok {
		if builtin.arity >= 0 && len(node.Args) != builtin.arity {
			return values.NO_VALUE, fail("eval/builtin/arity", &node.Token, node.Name, builtin.arity, len(node.Args))
		}
		args, u := ev.evalArgs(node, fr)
		if u != nil {
			return values.NO_VALUE, u
		}
		return builtin.fn(ev, &node.Token, args)
	}
	fn, ok := fr.reg.Get(node.Name)
	if !ok {
		return values.NO_VALUE, fail("eval/func/undefined", &node.Token, node.Name)
	}
	if len(node.Args) != fn.Sig.Len() {
		return values.NO_VALUE, fail("eval/func/arity", &node.Token, node.Name, fn.Sig.Len(), len(node.Args), fn.Sig.String())
	}
	args, u := ev.evalArgs(node, fr)
	if u != nil {
		return values.NO_VALUE, u
	}
	if fr.depth >= ev.MaxCallDepth {
		return values.NO_VALUE, fail("eval/depth", &node.Token, node.Name, ev.MaxCallDepth)
	}
	ev.Log.WithFields(logrus.Fields{"function": node.Name, "depth": fr.depth + 1}).Debug("call")
	env := values.NewEnvironment()
	for i, name := range fn.Sig.Names() {
		env.Set(name, args[i])
	}
	u = ev.execStatements(fn.Body.Statements, &frame{env: env, reg: fr.reg.Child(), depth: fr.depth + 1})
	switch {
	case u == nil:
		return values.NO_VALUE, nil
	case u.err != nil:
		u.err.AddToTrace(&node.Token)
		return values.NO_VALUE, u
	}
	return u.value, nil
}

// Arguments are evaluated left to right in the caller's frame.
func (ev *Evaluator) evalArgs(node *ast.FunctionCall, fr *frame) ([]values.Value, *unwind) {
	args := make([]values.Value, 0, len(node.Args))
	for _, arg := range node.Args {
		v, u := ev.evalValue(arg, fr, "eval/novalue/arg", arg.String())
		if u != nil {
			return nil, u
		}
		args = append(args, v)
	}
	return args, nil
}
