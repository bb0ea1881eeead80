package values

import "sort"

// Maps variable names to values. The top level of a program has one, and each function call gets a
// fresh one holding nothing but its parameters.
type Environment struct {
	store map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Environment) Set(name string, v Value) {
	e.store[name] = v
}

// In alphabetical order, for the REPL.
func (e *Environment) Names() []string {
	result := make([]string, 0, len(e.store))
	for k := range e.store {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}
