package parser

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/teolang/teo/source/ast"
	"github.com/teolang/teo/source/lexer"
	"github.com/teolang/teo/source/report"
	"github.com/teolang/teo/source/settings"
	"github.com/teolang/teo/source/token"
)

// A Pratt parser. Statements are parsed by recursive descent and expressions by precedence
// climbing. The parser stops at the first error it finds: once Errors is non-empty every parse
// function returns nil and nothing is appended to the program.

type Parser struct {
	lexer     *lexer.Lexer
	Errors    report.Errors
	curToken  token.Token
	peekToken token.Token
	log       logrus.FieldLogger
}

func New(source, input string) *Parser {
	p := &Parser{
		lexer:  lexer.NewLexer(source, input),
		Errors: report.Errors{},
		log:    settings.DiscardLogger(),
	}
	p.NextToken()
	p.NextToken()
	return p
}

func (p *Parser) SetLogger(log logrus.FieldLogger) {
	p.log = log
	p.lexer.SetLogger(log)
}

// Parses the whole of the source, returning the error with its position if there is one.
func Parse(source, input string) ([]ast.Node, error) {
	return ParseWithLogger(source, input, nil)
}

func ParseWithLogger(source, input string, log logrus.FieldLogger) ([]ast.Node, error) {
	p := New(source, input)
	if log != nil {
		p.SetLogger(log)
	}
	program := p.ParseProgram()
	if p.ErrorsExist() {
		return nil, p.Errors[0]
	}
	return program, nil
}

func (p *Parser) ErrorsExist() bool {
	return len(p.Errors) > 0
}

func (p *Parser) NextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextNonCommentToken()
	if p.peekToken.Type == token.ILLEGAL && !p.ErrorsExist() {
		p.Errors = append(p.Errors, p.lexer.Ers[len(p.lexer.Ers)-1])
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.ErrorsExist() {
		return false
	}
	if p.peekTokenIs(t) {
		p.NextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	if p.peekTokenIs(token.EOF) {
		p.Throw("parse/eof", &p.peekToken, string(t))
		return
	}
	p.Throw("parse/expected", &p.peekToken, string(t), p.peekToken.Literal)
}

func (p *Parser) Throw(errorId string, tok *token.Token, args ...any) {
	if p.ErrorsExist() {
		return
	}
	errTok := *tok // The parser's own tokens move on.
	p.Errors = report.Throw(errorId, p.Errors, &errTok, args...)
}

func (p *Parser) ParseProgram() []ast.Node {
	program := []ast.Node{}
	for !p.curTokenIs(token.EOF) {
		if p.ErrorsExist() {
			return nil
		}
		stmt := p.parseStatement()
		if p.ErrorsExist() {
			return nil
		}
		p.log.WithField("statement", stmt.String()).Debug("parser")
		program = append(program, stmt)
		p.NextToken()
	}
	return program
}

// Leaves the parser on the semicolon that ends the statement.
func (p *Parser) parseStatement() ast.Node {
	var stmt ast.Node
	switch p.curToken.Type {
	case token.DEF:
		stmt = p.parseFunctionDefinition()
	case token.IF:
		stmt = p.parseIfStatement()
	case token.FOR:
		stmt = p.parseForStatement()
	default:
		stmt = p.parseExpressionStatement()
	}
	if p.ErrorsExist() {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// An expression, or an assignment to a variable or to an element of an array.
func (p *Parser) parseExpressionStatement() ast.Node {
	left := p.parseExpression(LOWEST)
	if left == nil || !p.peekTokenIs(token.ASSIGN) {
		return left
	}
	p.NextToken()
	assignTok := p.curToken
	p.NextToken()
	switch target := left.(type) {
	case *ast.Identifier:
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		return &ast.Assignment{Token: assignTok, Name: target.Value, Value: value}
	case *ast.IndexExpression:
		if !isAssignable(target.Left) {
			p.Throw("parse/lhs", target.GetToken(), target.String())
			return nil
		}
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		return &ast.IndexAssignment{Token: assignTok, Target: target.Left, Index: target.Index, Value: value}
	}
	p.Throw("parse/lhs", &assignTok, left.String())
	return nil
}

func isAssignable(node ast.Node) bool {
	switch node := node.(type) {
	case *ast.Identifier:
		return true
	case *ast.IndexExpression:
		return isAssignable(node.Left)
	}
	return false
}

func (p *Parser) parseFunctionDefinition() ast.Node {
	fn := &ast.FunctionDefinition{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = p.curToken.Literal
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fn.Sig = p.parseSignature()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlock()
	if p.ErrorsExist() {
		return nil
	}
	return fn
}

// We're on the opening parenthesis. Types may be left off, in which case the parameter is 'any'.
func (p *Parser) parseSignature() ast.Signature {
	sig := ast.Signature{}
	if p.peekTokenIs(token.RPAREN) {
		p.NextToken()
		return sig
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		pair := ast.NameTypePair{VarName: p.curToken.Literal, VarType: "any"}
		if p.peekTokenIs(token.COLON) {
			p.NextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			pair.VarType = p.curToken.Literal
		}
		sig = append(sig, pair)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.NextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return sig
}

func (p *Parser) parseIfStatement() ast.Node {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.NextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) || !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlock()
	if p.ErrorsExist() {
		return nil
	}
	if !p.peekTokenIs(token.ELSE) {
		return stmt
	}
	p.NextToken()
	if p.peekTokenIs(token.IF) { // Then we have an 'else if', which we treat as an else block containing an if.
		p.NextToken()
		elseTok := p.curToken
		inner := p.parseIfStatement()
		if p.ErrorsExist() {
			return nil
		}
		stmt.Alternative = &ast.Block{Token: elseTok, Statements: []ast.Node{inner}}
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Alternative = p.parseBlock()
	if p.ErrorsExist() {
		return nil
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Node {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Variable = p.curToken.Literal
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.NextToken()
	stmt.Iterable = p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if p.ErrorsExist() {
		return nil
	}
	return stmt
}

// We're on the opening brace, and finish on the closing one.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.curToken, Statements: []ast.Node{}}
	p.NextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.Throw("parse/eof", &p.curToken, "}")
			return nil
		}
		stmt := p.parseStatement()
		if p.ErrorsExist() {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.NextToken()
	}
	return block
}

func (p *Parser) parseExpression(precedence int) ast.Node {
	if p.ErrorsExist() {
		return nil
	}
	var leftExp ast.Node
	switch p.curToken.Type {
	case token.EOF:
		p.Throw("parse/eof", &p.curToken, "expression")
		return nil
	case token.FALSE, token.TRUE:
		leftExp = &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			leftExp = p.parseFunctionCall()
		} else {
			leftExp = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		}
	case token.INT:
		leftExp = p.parseIntegerLiteral()
	case token.LBRACK:
		leftExp = p.parseArrayLiteral()
	case token.LPAREN:
		leftExp = p.parseGroupedExpression()
	case token.MINUS:
		leftExp = p.parsePrefixExpression()
	case token.STRING:
		leftExp = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	default:
		p.Throw("parse/prefix", &p.curToken, p.curToken.Literal)
		return nil
	}

	for precedence < p.peekPrecedence() {
		if p.ErrorsExist() {
			return nil
		}
		p.NextToken()
		if p.curTokenIs(token.LBRACK) {
			leftExp = p.parseIndexExpression(leftExp)
			continue
		}
		if infixes.Contains(p.curToken.Type) {
			leftExp = p.parseInfixExpression(leftExp)
		}
	}
	if p.ErrorsExist() {
		return nil
	}
	return leftExp
}

func (p *Parser) parseIntegerLiteral() ast.Node {
	value, err := strconv.Atoi(p.curToken.Literal)
	if err != nil {
		p.Throw("parse/int", &p.curToken, p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseArrayLiteral() ast.Node {
	array := &ast.ArrayLiteral{Token: p.curToken}
	array.Elements = p.parseExpressionList(token.RBRACK)
	if p.ErrorsExist() {
		return nil
	}
	return array
}

func (p *Parser) parseGroupedExpression() ast.Node {
	p.NextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parsePrefixExpression() ast.Node {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.NextToken()
	expression.Right = p.parseExpression(MINUS)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Node) ast.Node {
	expression := &ast.InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.curPrecedence()
	p.NextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseIndexExpression(left ast.Node) ast.Node {
	expression := &ast.IndexExpression{Token: p.curToken, Left: left}
	p.NextToken()
	expression.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACK) {
		return nil
	}
	return expression
}

// We're on the name of the function, with the parenthesis up next.
func (p *Parser) parseFunctionCall() ast.Node {
	call := &ast.FunctionCall{Token: p.curToken, Name: p.curToken.Literal}
	p.NextToken()
	call.Args = p.parseExpressionList(token.RPAREN)
	if p.ErrorsExist() {
		return nil
	}
	return call
}

// We're on the opening bracket, and finish on the closing one.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Node {
	list := []ast.Node{}
	if p.peekTokenIs(end) {
		p.NextToken()
		return list
	}
	p.NextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.NextToken()
		p.NextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}
