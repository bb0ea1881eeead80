package values

import (
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"
)

type ValueType uint32

const (
	NO_VALUE_TYPE ValueType = iota // The zero value, so that an unset Value is never mistaken for a real one.
	INT
	STRING
	ARRAY
)

var typeNames = []string{"no value", "Int", "String", "Array"}

func (t ValueType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown type " + strconv.Itoa(int(t))
}

// Arrays are persistent vectors of Values, so that assigning an array to a variable, or passing it
// to a function, shares it without any possibility of the one being changed through the other.
type Value struct {
	T ValueType
	V any
}

var NO_VALUE = Value{T: NO_VALUE_TYPE}

func Int(i int) Value {
	return Value{T: INT, V: i}
}

func Text(s string) Value {
	return Value{T: STRING, V: s}
}

func Array(elements ...Value) Value {
	vec := vector.Empty
	for _, el := range elements {
		vec = vec.Conj(el)
	}
	return Value{T: ARRAY, V: vec}
}

func FromVector(vec vector.Vector) Value {
	return Value{T: ARRAY, V: vec}
}

func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

func (v Value) TypeName() string {
	return v.T.String()
}

func (v Value) IsNoValue() bool {
	return v.T == NO_VALUE_TYPE
}

func (v Value) AsInt() (int, bool) {
	if v.T != INT {
		return 0, false
	}
	return v.V.(int), true
}

func (v Value) AsText() (string, bool) {
	if v.T != STRING {
		return "", false
	}
	return v.V.(string), true
}

func (v Value) AsArray() (vector.Vector, bool) {
	if v.T != ARRAY {
		return nil, false
	}
	return v.V.(vector.Vector), true
}

// The elements of an array, in order. Panics if the value isn't one.
func (v Value) Elements() []Value {
	vec := v.V.(vector.Vector)
	result := make([]Value, 0, vec.Len())
	for it := vec.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Value))
	}
	return result
}

// What print writes: strings are written as they are, at any depth of nesting.
func (v Value) Render() string {
	switch v.T {
	case INT:
		return strconv.Itoa(v.V.(int))
	case STRING:
		return v.V.(string)
	case ARRAY:
		elements := v.Elements()
		result := make([]string, 0, len(elements))
		for _, el := range elements {
			result = append(result, el.Render())
		}
		return "[" + strings.Join(result, ", ") + "]"
	}
	return "<" + v.TypeName() + ">"
}

// For the REPL and the logs, where we want to see that a string is a string.
func (v Value) Inspect() string {
	switch v.T {
	case STRING:
		return strconv.Quote(v.V.(string))
	case ARRAY:
		elements := v.Elements()
		result := make([]string, 0, len(elements))
		for _, el := range elements {
			result = append(result, el.Inspect())
		}
		return "[" + strings.Join(result, ", ") + "]"
	}
	return v.Render()
}

// Structural equality: values of different types are never equal.
func Equal(v, w Value) bool {
	if v.T != w.T {
		return false
	}
	switch v.T {
	case NO_VALUE_TYPE:
		return true
	case INT:
		return v.V.(int) == w.V.(int)
	case STRING:
		return v.V.(string) == w.V.(string)
	case ARRAY:
		vVec, wVec := v.V.(vector.Vector), w.V.(vector.Vector)
		if vVec.Len() != wVec.Len() {
			return false
		}
		for vIt, wIt := vVec.Iterator(), wVec.Iterator(); vIt.HasElem(); vIt.Next() {
			if !Equal(vIt.Elem().(Value), wIt.Elem().(Value)) {
				return false
			}
			wIt.Next()
		}
		return true
	}
	return false
}
