package parser

import (
	"github.com/teolang/teo/source/dtypes"
	"github.com/teolang/teo/source/token"
)

// Data and fuctions for sorting out the operator precedences.

const (
	_ int = iota
	LOWEST
	EQUALS      // == or !=
	LESSGREATER // > or < or <= or >=
	SUM         // + or -
	PRODUCT     // * or /
	MINUS       // - as a prefix
	INDEX       // after [
)

var precedences = map[token.TokenType]int{
	token.EQ:     EQUALS,
	token.NOT_EQ: EQUALS,
	token.LT:     LESSGREATER,
	token.GT:     LESSGREATER,
	token.LEQ:    LESSGREATER,
	token.GEQ:    LESSGREATER,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.TIMES:  PRODUCT,
	token.DIVIDE: PRODUCT,
	token.LBRACK: INDEX,
}

var infixes = dtypes.MakeFromSlice([]token.TokenType{token.EQ, token.NOT_EQ, token.LT, token.GT,
	token.LEQ, token.GEQ, token.PLUS, token.MINUS, token.TIMES, token.DIVIDE})

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}
