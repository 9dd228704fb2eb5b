package factcheck

import (
	"fmt"
	"strconv"
)

// AbsenceKind tags why a navigation step produced nothing.
type AbsenceKind int

const (
	Missing AbsenceKind = iota + 1
	WrongType
	Empty
)

func (k AbsenceKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case WrongType:
		return "wrong type"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// Absence describes where and why a walk over a decoded JSON tree stopped.
type Absence struct {
	Path string
	Kind AbsenceKind
	Want string // expected shape, set for WrongType
	Got  string
}

func (a *Absence) Error() string {
	switch a.Kind {
	case WrongType:
		return fmt.Sprintf("%s: expected %s, got %s", a.Path, a.Want, a.Got)
	default:
		return fmt.Sprintf("%s: %s", a.Path, a.Kind)
	}
}

// Node is a position in a decoded JSON value (maps, slices, strings, numbers, bools, nil).
// Accessors never panic: once a step fails, the node carries the Absence and every
// later step passes it through unchanged.
type Node struct {
	value  any
	path   string
	absent *Absence
}

// Root starts a walk at v.
func Root(v any) Node {
	return Node{value: v, path: "$"}
}

// Absent returns the reason the walk stopped, or nil while the node is present.
func (n Node) Absent() *Absence { return n.absent }

// Value returns the underlying decoded value.
func (n Node) Value() any { return n.value }

// Path is the JSONPath-like location of the node.
func (n Node) Path() string { return n.path }

func (n Node) fail(kind AbsenceKind, want string) Node {
	return Node{path: n.path, absent: &Absence{Path: n.path, Kind: kind, Want: want, Got: kindOf(n.value)}}
}

// Field descends into key of an object. A JSON null counts as missing.
func (n Node) Field(key string) Node {
	if n.absent != nil {
		return n
	}
	m, ok := n.value.(map[string]any)
	if !ok {
		return n.fail(WrongType, "object")
	}
	child := Node{value: m[key], path: n.path + "." + key}
	if v, ok := m[key]; !ok || v == nil {
		return child.fail(Missing, "")
	}
	return child
}

// Index descends into element i of a list.
func (n Node) Index(i int) Node {
	if n.absent != nil {
		return n
	}
	list, ok := n.value.([]any)
	if !ok {
		return n.fail(WrongType, "array")
	}
	child := Node{path: n.path + "[" + strconv.Itoa(i) + "]"}
	if len(list) == 0 {
		return n.fail(Empty, "")
	}
	if i < 0 || i >= len(list) {
		return child.fail(Missing, "")
	}
	child.value = list[i]
	return child
}

// Object asserts the node is a JSON object.
func (n Node) Object() Node {
	if n.absent != nil {
		return n
	}
	if _, ok := n.value.(map[string]any); !ok {
		return n.fail(WrongType, "object")
	}
	return n
}

// List asserts the node is a non-empty JSON array.
func (n Node) List() Node {
	if n.absent != nil {
		return n
	}
	list, ok := n.value.([]any)
	if !ok {
		return n.fail(WrongType, "array")
	}
	if len(list) == 0 {
		return n.fail(Empty, "")
	}
	return n
}

// Str asserts the node is a JSON string. Empty strings are allowed.
func (n Node) Str() Node {
	if n.absent != nil {
		return n
	}
	if _, ok := n.value.(string); !ok {
		return n.fail(WrongType, "string")
	}
	return n
}

// NonEmpty asserts the node is a non-empty string.
func (n Node) NonEmpty() Node {
	n = n.Str()
	if n.absent != nil {
		return n
	}
	if n.value.(string) == "" {
		return n.fail(Empty, "")
	}
	return n
}

// Text returns the string at the node, if the walk reached one.
func (n Node) Text() (string, bool) {
	if n.absent != nil {
		return "", false
	}
	s, ok := n.value.(string)
	return s, ok
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
