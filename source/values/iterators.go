package values

import (
	"unicode/utf8"

	"src.elv.sh/pkg/persistent/vector"
)

// What a for loop ranges over.
type Iterator interface {
	Unfinished() bool
	GetValue() Value
}

// Returns nil if the value can't be iterated over.
func MakeIterator(v Value) Iterator {
	switch v.T {
	case ARRAY:
		return &ArrayIterator{VecIt: v.V.(vector.Vector).Iterator()}
	case STRING:
		return &StringIterator{Str: v.V.(string)}
	}
	return nil
}

type ArrayIterator struct {
	VecIt vector.Iterator
}

func (it *ArrayIterator) Unfinished() bool {
	return it.VecIt.HasElem()
}

func (it *ArrayIterator) GetValue() Value {
	valResult := it.VecIt.Elem().(Value)
	it.VecIt.Next()
	return valResult
}

// Goes through the string a character at a time, where a character is a rune.
type StringIterator struct {
	Str string
	pos int
}

func (it *StringIterator) Unfinished() bool {
	return it.pos < len(it.Str)
}

func (it *StringIterator) GetValue() Value {
	r, size := utf8.DecodeRuneInString(it.Str[it.pos:])
	it.pos += size
	return Text(string(r))
}
