package evaluator

import (
	"sort"

	"github.com/teolang/teo/source/ast"
)

// Maps function names to their definitions. Each function call gets a child of the caller's
// registry, so that functions defined in a body are visible only to that call and the calls it
// makes.
type Registry struct {
	parent    *Registry
	functions map[string]*ast.FunctionDefinition
}

func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]*ast.FunctionDefinition)}
}

func (r *Registry) Child() *Registry {
	return &Registry{parent: r, functions: make(map[string]*ast.FunctionDefinition)}
}

func (r *Registry) Get(name string) (*ast.FunctionDefinition, bool) {
	for reg := r; reg != nil; reg = reg.parent {
		if fn, ok := reg.functions[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Returns false if the name is already taken anywhere in the chain.
func (r *Registry) Define(fn *ast.FunctionDefinition) bool {
	if _, ok := r.Get(fn.Name); ok {
		return false
	}
	r.functions[fn.Name] = fn
	return true
}

// The names visible from this registry, in alphabetical order.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	result := []string{}
	for reg := r; reg != nil; reg = reg.parent {
		for name := range reg.functions {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	sort.Strings(result)
	return result
}
