package lexer

// The RuneSupplier walks the source one rune at a time, keeping track of the line number and the
// column, so that the lexer itself only has to think about what the runes mean.
type RuneSupplier struct {
	code      []rune
	pos       int
	lineNo    int
	lineStart int
}

func NewRuneSupplier(code []rune) *RuneSupplier {
	return &RuneSupplier{code: code, lineNo: 1}
}

func (rs *RuneSupplier) CurrentRune() rune {
	if rs.pos < len(rs.code) {
		return rs.code[rs.pos]
	}
	return 0
}

// AtEnd is the only test for the end of input, since a NUL rune is legal UTF-8.
func (rs *RuneSupplier) AtEnd() bool {
	return rs.pos >= len(rs.code)
}

func (rs *RuneSupplier) PeekRune() rune {
	if rs.pos+1 < len(rs.code) {
		return rs.code[rs.pos+1]
	}
	return 0
}

func (rs *RuneSupplier) Next() {
	if rs.pos >= len(rs.code) {
		return
	}
	if rs.code[rs.pos] == '\n' {
		rs.lineNo++
		rs.lineStart = rs.pos + 1
	}
	rs.pos++
}

// Line and column of the current rune. Columns count from zero.
func (rs *RuneSupplier) Position() (int, int) {
	return rs.lineNo, rs.pos - rs.lineStart
}

func (rs *RuneSupplier) ReadNumber() string {
	result := string(rs.CurrentRune())
	for IsDigit(rs.PeekRune()) {
		rs.Next()
		result = result + string(rs.CurrentRune())
	}
	return result
}

func (rs *RuneSupplier) ReadIdentifier() string {
	result := string(rs.CurrentRune()) // i.e. the character that suggested this was an identifier.
	for IsLetter(rs.PeekRune()) || IsDigit(rs.PeekRune()) || IsUnderscore(rs.PeekRune()) {
		rs.Next()
		result = result + string(rs.CurrentRune())
	}
	return result
}

func (rs *RuneSupplier) ReadComment() string {
	result := ""
	for rs.pos+1 < len(rs.code) && rs.PeekRune() != '\n' {
		rs.Next()
		result = result + string(rs.CurrentRune())
	}
	return result
}

// Leaves the supplier on the closing quote. The bool is false if the line or the input ended first.
func (rs *RuneSupplier) ReadFormattedString() (string, bool) {
	escape := false
	result := ""
	for {
		rs.Next()
		if rs.AtEnd() || (rs.CurrentRune() == '"' && !escape) || rs.CurrentRune() == '\r' || rs.CurrentRune() == '\n' {
			break
		}
		if rs.CurrentRune() == '\\' && !escape {
			escape = true
			continue
		}
		charToAdd := rs.CurrentRune()
		if escape {
			escape = false
			switch rs.CurrentRune() {
			case 'n':
				charToAdd = '\n'
			case 'r':
				charToAdd = '\r'
			case 't':
				charToAdd = '\t'
			case 'e':
				charToAdd = '\033'
			}
		}
		result = result + string(charToAdd)
	}
	return result, !rs.AtEnd() && rs.CurrentRune() == '"'
}
