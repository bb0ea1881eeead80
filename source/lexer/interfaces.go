package lexer

import (
	"fmt"

	"github.com/teolang/teo/source/token"
)

// Anything the tokens can come from.
type TokenSupplier interface{ NextToken() token.Token }

// Dumps the contents of a `TokenSupplier` into a string, one token per line.
func String(t TokenSupplier) string {
	result := ""
	for tok := t.NextToken(); tok.Type != token.EOF; tok = t.NextToken() {
		result = result + fmt.Sprintf("%v %q @%d:%d\n", tok.Type, tok.Literal, tok.Line, tok.ChStart)
		if tok.Type == token.ILLEGAL {
			break
		}
	}
	return result
}
