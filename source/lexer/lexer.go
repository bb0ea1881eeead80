package lexer

import (
	"strconv"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/teolang/teo/source/report"
	"github.com/teolang/teo/source/settings"
	"github.com/teolang/teo/source/token"
)

// Newlines mean nothing to the language, since every statement is ended by a semicolon, so the
// lexer just treats them as whitespace.
type Lexer struct {
	runes  *RuneSupplier
	tstart int // the column at the start of a token
	lineNo int
	source string
	log    logrus.FieldLogger
	Ers    report.Errors
}

func NewLexer(source, input string) *Lexer {
	return &Lexer{
		runes:  NewRuneSupplier([]rune(input)),
		lineNo: 1,
		source: source,
		log:    settings.DiscardLogger(),
		Ers:    report.Errors{},
	}
}

func (l *Lexer) SetLogger(log logrus.FieldLogger) {
	l.log = log
}

func (l *Lexer) NextNonCommentToken() token.Token {
	for tok := l.NextToken(); ; tok = l.NextToken() {
		if tok.Type != token.COMMENT {
			return tok
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	l.lineNo, l.tstart = l.runes.Position()
	if l.runes.AtEnd() {
		return l.MakeToken(token.EOF, "EOF")
	}
	switch l.runes.CurrentRune() {
	case '=':
		if l.runes.PeekRune() == '=' {
			l.runes.Next()
			return l.NewToken(token.EQ, "==")
		}
		return l.NewToken(token.ASSIGN, "=")
	case '!':
		if l.runes.PeekRune() == '=' {
			l.runes.Next()
			return l.NewToken(token.NOT_EQ, "!=")
		}
	case '<':
		if l.runes.PeekRune() == '=' {
			l.runes.Next()
			return l.NewToken(token.LEQ, "<=")
		}
		return l.NewToken(token.LT, "<")
	case '>':
		if l.runes.PeekRune() == '=' {
			l.runes.Next()
			return l.NewToken(token.GEQ, ">=")
		}
		return l.NewToken(token.GT, ">")
	case '+':
		return l.NewToken(token.PLUS, "+")
	case '-':
		return l.NewToken(token.MINUS, "-")
	case '*':
		return l.NewToken(token.TIMES, "*")
	case '/':
		if l.runes.PeekRune() == '/' {
			l.runes.Next()
			return l.NewToken(token.COMMENT, l.runes.ReadComment())
		}
		return l.NewToken(token.DIVIDE, "/")
	case ';':
		return l.NewToken(token.SEMICOLON, ";")
	case ':':
		return l.NewToken(token.COLON, ":")
	case ',':
		return l.NewToken(token.COMMA, ",")
	case '(':
		return l.NewToken(token.LPAREN, "(")
	case ')':
		return l.NewToken(token.RPAREN, ")")
	case '{':
		return l.NewToken(token.LBRACE, "{")
	case '}':
		return l.NewToken(token.RBRACE, "}")
	case '[':
		return l.NewToken(token.LBRACK, "[")
	case ']':
		return l.NewToken(token.RBRACK, "]")
	case '"':
		s, ok := l.runes.ReadFormattedString()
		if !ok {
			return l.Throw("lex/quote")
		}
		return l.NewToken(token.STRING, s)
	}

	if IsDigit(l.runes.CurrentRune()) {
		numString := l.runes.ReadNumber()
		if _, err := strconv.Atoi(numString); err != nil {
			l.runes.Next()
			return l.Throw("lex/num", numString)
		}
		return l.NewToken(token.INT, numString)
	}

	if IsLetter(l.runes.CurrentRune()) || IsUnderscore(l.runes.CurrentRune()) {
		lit := l.runes.ReadIdentifier()
		return l.NewToken(token.LookupIdent(lit), lit)
	}

	// Or we have nothing recognizable.
	ch := l.runes.CurrentRune()
	tok := l.Throw("lex/ill", ch)
	l.runes.Next()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for IsWhitespace(l.runes.CurrentRune()) {
		l.runes.Next()
	}
}

func IsLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func IsUnderscore(ch rune) bool {
	return ch == '_'
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// Consumes the current rune, which is the last rune of the token.
func (l *Lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	l.runes.Next()
	return l.MakeToken(tokenType, st)
}

func (l *Lexer) MakeToken(tokenType token.TokenType, st string) token.Token {
	_, chNo := l.runes.Position()
	tok := token.Token{Type: tokenType, Literal: st, Source: l.source, Line: l.lineNo, ChStart: l.tstart, ChEnd: chNo}
	l.log.WithFields(logrus.Fields{"type": tokenType, "literal": st, "line": l.lineNo}).Debug("lexer")
	return tok
}

func (l *Lexer) Throw(errorId string, args ...any) token.Token {
	tok := l.MakeToken(token.ILLEGAL, errorId)
	l.Ers = report.Throw(errorId, l.Ers, &tok, args...)
	return tok
}
