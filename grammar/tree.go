package grammar

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Kind tags the variant held by a Tree.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindList
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Tree is a decoded response value. Only the field matching Kind is
// meaningful. Lists are the common case; objects only show up in the
// "dj=1" flavour of the endpoint.
type Tree struct {
	Kind   Kind
	Num    float64
	Str    string
	Bool   bool
	Items  []Tree
	Fields map[string]Tree
}

// Null returns the null tree.
func Null() Tree { return Tree{} }

// Number returns a number leaf.
func Number(f float64) Tree { return Tree{Kind: KindNumber, Num: f} }

// String returns a string leaf.
func String(s string) Tree { return Tree{Kind: KindString, Str: s} }

// Bool returns a boolean leaf.
func Bool(b bool) Tree { return Tree{Kind: KindBool, Bool: b} }

// List returns a list of items.
func List(items ...Tree) Tree {
	if items == nil {
		items = []Tree{}
	}
	return Tree{Kind: KindList, Items: items}
}

// Object returns an object tree.
func Object(fields map[string]Tree) Tree {
	if fields == nil {
		fields = map[string]Tree{}
	}
	return Tree{Kind: KindObject, Fields: fields}
}

// IsNull reports whether t is null.
func (t Tree) IsNull() bool { return t.Kind == KindNull }

// Len returns the number of list items, or zero for non-lists.
func (t Tree) Len() int {
	if t.Kind != KindList {
		return 0
	}
	return len(t.Items)
}

// Index returns the i-th item of a list. Negative indices count from the
// end. Anything out of range, or indexing a non-list, yields Null.
func (t Tree) Index(i int) Tree {
	if t.Kind != KindList {
		return Null()
	}
	if i < 0 {
		i += len(t.Items)
	}
	if i < 0 || i >= len(t.Items) {
		return Null()
	}
	return t.Items[i]
}

// At walks a path of list indices, e.g. t.At(0, 1, -2).
func (t Tree) At(path ...int) Tree {
	cur := t
	for _, i := range path {
		cur = cur.Index(i)
	}
	return cur
}

// Field returns the named field of an object, or Null.
func (t Tree) Field(name string) Tree {
	if t.Kind != KindObject {
		return Null()
	}
	return t.Fields[name]
}

// AsString returns the string of a string leaf.
func (t Tree) AsString() (string, bool) {
	return t.Str, t.Kind == KindString
}

// AsNumber returns the value of a number leaf.
func (t Tree) AsNumber() (float64, bool) {
	return t.Num, t.Kind == KindNumber
}

// Truthy mirrors the loose "is this worth keeping" test used when picking
// optional response parts: null, zero, false, "" and empty containers are
// falsy.
func (t Tree) Truthy() bool {
	switch t.Kind {
	case KindNumber:
		return t.Num != 0
	case KindString:
		return t.Str != ""
	case KindBool:
		return t.Bool
	case KindList:
		return len(t.Items) > 0
	case KindObject:
		return len(t.Fields) > 0
	default:
		return false
	}
}

// Strings flattens a string leaf or a list of string leaves. Detection
// results use either shape depending on how many languages were found.
func (t Tree) Strings() []string {
	switch t.Kind {
	case KindString:
		return []string{t.Str}
	case KindList:
		out := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			if s, ok := it.AsString(); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes t back to strict JSON.
func (t Tree) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case KindNumber:
		return json.Marshal(t.Num)
	case KindString:
		return json.Marshal(t.Str)
	case KindBool:
		return json.Marshal(t.Bool)
	case KindList:
		items := t.Items
		if items == nil {
			items = []Tree{}
		}
		return json.Marshal(items)
	case KindObject:
		keys := make([]string, 0, len(t.Fields))
		for k := range t.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, _ := json.Marshal(k)
			vb, err := t.Fields[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			buf = append(buf, vb...)
		}
		return append(buf, '}'), nil
	default:
		return []byte("null"), nil
	}
}
