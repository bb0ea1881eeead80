package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/teolang/teo/source/token"
)

// The base Node interface. Nodes are made once by the parser and never changed afterwards, so a
// function body can be run any number of times.
type Node interface {
	Children() []Node
	GetToken() *token.Token
	String() string
}

// Nodes in alphabetical order. Other structures and functions are in a separate section at the bottom.

type ArrayLiteral struct {
	Token    token.Token
	Elements []Node
}

func (al *ArrayLiteral) Children() []Node       { return al.Elements }
func (al *ArrayLiteral) GetToken() *token.Token { return &al.Token }
func (al *ArrayLiteral) String() string {
	return "[" + join(al.Elements, ", ") + "]"
}

type Assignment struct {
	Token token.Token
	Name  string
	Value Node
}

func (as *Assignment) Children() []Node       { return []Node{as.Value} }
func (as *Assignment) GetToken() *token.Token { return &as.Token }
func (as *Assignment) String() string {
	return "(" + as.Name + " = " + as.Value.String() + ")"
}

type Block struct {
	Token      token.Token
	Statements []Node
}

func (b *Block) Children() []Node       { return b.Statements }
func (b *Block) GetToken() *token.Token { return &b.Token }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for _, s := range b.Statements {
		out.WriteString(" ")
		out.WriteString(s.String())
		out.WriteString(";")
	}
	out.WriteString(" }")
	return out.String()
}

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Children() []Node       { return []Node{} }
func (b *BooleanLiteral) GetToken() *token.Token { return &b.Token }
func (b *BooleanLiteral) String() string         { return b.Token.Literal }

type ForStatement struct {
	Token    token.Token
	Variable string
	Iterable Node
	Body     *Block
}

func (fs *ForStatement) Children() []Node       { return []Node{fs.Iterable, fs.Body} }
func (fs *ForStatement) GetToken() *token.Token { return &fs.Token }
func (fs *ForStatement) String() string {
	return "for " + fs.Variable + " in " + fs.Iterable.String() + " " + fs.Body.String()
}

type FunctionCall struct {
	Token token.Token
	Name  string
	Args  []Node
}

func (fc *FunctionCall) Children() []Node       { return fc.Args }
func (fc *FunctionCall) GetToken() *token.Token { return &fc.Token }
func (fc *FunctionCall) String() string {
	return fc.Name + "(" + join(fc.Args, ", ") + ")"
}

type FunctionDefinition struct {
	Token token.Token
	Name  string
	Sig   Signature
	Body  *Block
}

func (fd *FunctionDefinition) Children() []Node       { return []Node{fd.Body} }
func (fd *FunctionDefinition) GetToken() *token.Token { return &fd.Token }
func (fd *FunctionDefinition) String() string {
	return "def " + fd.Name + fd.Sig.String() + " " + fd.Body.String()
}

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Children() []Node       { return []Node{} }
func (i *Identifier) GetToken() *token.Token { return &i.Token }
func (i *Identifier) String() string         { return i.Value }

type IfStatement struct {
	Token       token.Token
	Condition   Node
	Consequence *Block
	Alternative *Block // nil if there's no else branch
}

func (is *IfStatement) Children() []Node {
	if is.Alternative == nil {
		return []Node{is.Condition, is.Consequence}
	}
	return []Node{is.Condition, is.Consequence, is.Alternative}
}
func (is *IfStatement) GetToken() *token.Token { return &is.Token }
func (is *IfStatement) String() string {
	result := "if " + is.Condition.String() + " " + is.Consequence.String()
	if is.Alternative != nil {
		result = result + " else " + is.Alternative.String()
	}
	return result
}

type IndexAssignment struct {
	Token  token.Token
	Target Node // Either an Identifier or, for nested arrays, an IndexExpression.
	Index  Node
	Value  Node
}

func (ia *IndexAssignment) Children() []Node       { return []Node{ia.Target, ia.Index, ia.Value} }
func (ia *IndexAssignment) GetToken() *token.Token { return &ia.Token }
func (ia *IndexAssignment) String() string {
	return "(" + ia.Target.String() + "[" + ia.Index.String() + "] = " + ia.Value.String() + ")"
}

type IndexExpression struct {
	Token token.Token
	Left  Node
	Index Node
}

func (ie *IndexExpression) Children() []Node       { return []Node{ie.Left, ie.Index} }
func (ie *IndexExpression) GetToken() *token.Token { return &ie.Token }
func (ie *IndexExpression) String() string {
	return "(" + ie.Left.String() + "[" + ie.Index.String() + "])"
}

type InfixExpression struct {
	Token    token.Token
	Left     Node
	Operator string
	Right    Node
}

func (ie *InfixExpression) Children() []Node       { return []Node{ie.Left, ie.Right} }
func (ie *InfixExpression) GetToken() *token.Token { return &ie.Token }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

type IntegerLiteral struct {
	Token token.Token
	Value int
}

func (il *IntegerLiteral) Children() []Node       { return []Node{} }
func (il *IntegerLiteral) GetToken() *token.Token { return &il.Token }
func (il *IntegerLiteral) String() string         { return il.Token.Literal }

type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Node
}

func (pe *PrefixExpression) Children() []Node       { return []Node{pe.Right} }
func (pe *PrefixExpression) GetToken() *token.Token { return &pe.Token }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + " " + pe.Right.String() + ")"
}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Children() []Node       { return []Node{} }
func (sl *StringLiteral) GetToken() *token.Token { return &sl.Token }
func (sl *StringLiteral) String() string         { return strconv.Quote(sl.Value) }

// Other structures and functions.

// Renders a sequence of statements the way the parser tests expect them.
func String(statements []Node) string {
	result := make([]string, 0, len(statements))
	for _, s := range statements {
		result = append(result, s.String()+";")
	}
	return strings.Join(result, " ")
}

func join(nodes []Node, sep string) string {
	result := make([]string, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, n.String())
	}
	return strings.Join(result, sep)
}
