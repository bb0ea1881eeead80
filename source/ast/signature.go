package ast

// The declared type of a parameter is advisory: the evaluator doesn't check it, but it appears in
// error messages so that the user can see what the function expected.

type NameTypePair struct {
	VarName string
	VarType string
}

type Signature []NameTypePair

func (s Signature) String() (result string) {
	for _, v := range s {
		if result != "" {
			result = result + ", "
		}
		result = result + v.VarName + " " + v.VarType
	}
	result = "(" + result + ")"
	return
}

func (s Signature) Len() int {
	return len(s)
}

func (s Signature) Names() []string {
	result := make([]string, 0, len(s))
	for _, v := range s {
		result = append(result, v.VarName)
	}
	return result
}
