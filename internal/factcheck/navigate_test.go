package factcheck

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestNodeWalk(t *testing.T) {
	root := Root(decode(t, `{"a":{"b":[{"c":"x"}]}}`))

	text, ok := root.Field("a").Field("b").Index(0).Field("c").Str().Text()
	if !ok || text != "x" {
		t.Fatalf("expected x, got %q ok=%v", text, ok)
	}
}

func TestNodeAbsenceReasons(t *testing.T) {
	root := Root(decode(t, `{"a":{"b":[],"n":null,"s":"str"}}`))

	cases := []struct {
		name string
		node Node
		kind AbsenceKind
		path string
	}{
		{"missing key", root.Field("zz"), Missing, "$.zz"},
		{"null counts as missing", root.Field("a").Field("n"), Missing, "$.a.n"},
		{"empty list", root.Field("a").Field("b").Index(0), Empty, "$.a.b"},
		{"not a list", root.Field("a").Field("s").Index(0), WrongType, "$.a.s"},
		{"not an object", root.Field("a").Field("s").Field("x"), WrongType, "$.a.s"},
		{"absence sticks", root.Field("zz").Field("y").Index(3).Str(), Missing, "$.zz"},
	}
	for _, tc := range cases {
		reason := tc.node.Absent()
		if reason == nil {
			t.Fatalf("%s: expected absence", tc.name)
		}
		if reason.Kind != tc.kind || reason.Path != tc.path {
			t.Fatalf("%s: got %s", tc.name, reason.Error())
		}
	}
}

func TestNodeIndexOutOfRange(t *testing.T) {
	n := Root(decode(t, `[1]`)).Index(2)
	if r := n.Absent(); r == nil || r.Kind != Missing || r.Path != "$[2]" {
		t.Fatalf("unexpected absence %+v", r)
	}
}

func TestNodeNonEmpty(t *testing.T) {
	if r := Root("").NonEmpty().Absent(); r == nil || r.Kind != Empty {
		t.Fatalf("expected empty absence, got %+v", r)
	}
	if r := Root(3.0).NonEmpty().Absent(); r == nil || r.Kind != WrongType || r.Got != "number" {
		t.Fatalf("expected wrong type, got %+v", r)
	}
}
