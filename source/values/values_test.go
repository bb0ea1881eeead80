package values

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(-42), "-42"},
		{Text("hello"), "hello"},
		{Array(), "[]"},
		{Array(Int(1), Text("two"), Array(Int(3), Text("four"))), "[1, two, [3, four]]"},
	}
	for _, test := range tests {
		if got := test.v.Render(); got != test.want {
			t.Fatalf("Wanted : %s | Got : %s", test.want, got)
		}
	}
	if got := Array(Text("a")).Inspect(); got != `["a"]` {
		t.Fatalf(`Wanted : ["a"] | Got : %s`, got)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		v, w Value
		want bool
	}{
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{Int(1), Text("1"), false},
		{Text("a"), Text("a"), true},
		{Array(Int(1), Array(Text("x"))), Array(Int(1), Array(Text("x"))), true},
		{Array(Int(1), Int(2)), Array(Int(1)), false},
		{Array(Int(1), Int(2)), Array(Int(1), Int(3)), false},
	}
	for i, test := range tests {
		if got := Equal(test.v, test.w); got != test.want {
			t.Fatalf("tests[%d]: comparing %s with %s, wanted %v", i, test.v.Inspect(), test.w.Inspect(), test.want)
		}
	}
}

func TestArraysAreValues(t *testing.T) {
	a := Array(Int(5), Int(7), Int(3))
	vec, _ := a.AsArray()
	b := FromVector(vec.Assoc(1, Int(9)))
	if a.Render() != "[5, 7, 3]" || b.Render() != "[5, 9, 3]" {
		t.Fatalf("Updating a copy changed the original: %s, %s", a.Render(), b.Render())
	}
}

func TestIterators(t *testing.T) {
	var got []string
	for it := MakeIterator(Text("héy")); it.Unfinished(); {
		got = append(got, it.GetValue().Render())
	}
	if len(got) != 3 || got[1] != "é" {
		t.Fatalf("Bad string iteration: %v", got)
	}
	sum := 0
	for it := MakeIterator(Array(Int(1), Int(2), Int(3))); it.Unfinished(); {
		i, _ := it.GetValue().AsInt()
		sum += i
	}
	if sum != 6 {
		t.Fatalf("Wanted : 6 | Got : %d", sum)
	}
	if MakeIterator(Int(3)) != nil {
		t.Fatal("Ints shouldn't be iterable")
	}
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	env.Set("y", Int(1))
	env.Set("x", Text("a"))
	env.Set("y", Int(2))
	if v, ok := env.Get("y"); !ok || !Equal(v, Int(2)) {
		t.Fatalf("Wanted y = 2, got %v", v)
	}
	if _, ok := env.Get("z"); ok {
		t.Fatal("z shouldn't be defined")
	}
	if names := env.Names(); len(names) != 2 || names[0] != "x" {
		t.Fatalf("Bad names: %v", names)
	}
}
