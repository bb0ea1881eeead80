package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT   = "IDENT"  // add, foobar, x, y, ...
	INT     = "int"    // 1343456
	STRING  = "string" // "foo"
	TRUE    = "true"
	FALSE   = "false"
	COMMENT = "COMMENT" // // foo bar zort troz

	// Operators
	ASSIGN = "="
	PLUS   = "+"
	MINUS  = "-"
	TIMES  = "*"
	DIVIDE = "/"

	LT     = "<"
	GT     = ">"
	LEQ    = "<="
	GEQ    = ">="
	EQ     = "=="
	NOT_EQ = "!="

	COLON     = ":"
	SEMICOLON = ";"
	COMMA     = ","

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"
	LBRACK = "["
	RBRACK = "]"

	// Keywords
	DEF  = "def"
	IF   = "if"
	ELSE = "else"
	FOR  = "for"
	IN   = "in"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,

	"def":  DEF,
	"if":   IF,
	"else": ELSE,
	"for":  FOR,
	"in":   IN,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
