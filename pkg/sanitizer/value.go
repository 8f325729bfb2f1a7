package sanitizer

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindKeyed
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindKeyed:
		return "keyed"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Pair is one entry of a keyed Value.
type Pair struct {
	Key   string
	Value Value
}

// Value is one node of untrusted, JSON-like input. The zero Value is null.
//
// Numbers keep their textual form so they pass through sanitization byte for
// byte. Keyed values keep their key order.
type Value struct {
	kind  Kind
	b     bool
	text  string // string payload or number literal
	items []Value
	pairs []Pair
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value from its JSON literal.
func Number(n json.Number) Value { return Value{kind: KindNumber, text: string(n)} }

// Int returns a numeric Value.
func Int(i int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)} }

// Float returns a numeric Value.
func Float(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Sequence returns an ordered list Value.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value{}, items...)}
}

// Keyed returns a keyed Value. Keys are unique: a repeated key keeps the
// position of its first occurrence and the value of its last one.
func Keyed(pairs ...Pair) Value {
	out := make([]Pair, 0, len(pairs))
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if i, ok := index[p.Key]; ok {
			out[i].Value = p.Value
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return Value{kind: KindKeyed, pairs: out}
}

// Kind returns the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean payload; false for other kinds.
func (v Value) BoolValue() bool { return v.kind == KindBool && v.b }

// Number returns the numeric literal; empty for other kinds.
func (v Value) Number() json.Number {
	if v.kind != KindNumber {
		return ""
	}
	return json.Number(v.text)
}

// Text returns the string payload; empty for other kinds.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Items returns a copy of the elements of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Pairs returns a copy of the entries of a keyed value.
func (v Value) Pairs() []Pair {
	if v.kind != KindKeyed {
		return nil
	}
	return append([]Pair(nil), v.pairs...)
}

// Keys returns the keys of a keyed value in order.
func (v Value) Keys() []string {
	if v.kind != KindKeyed {
		return nil
	}
	keys := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Len returns the number of elements of a sequence or entries of a keyed value.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindKeyed:
		return len(v.pairs)
	default:
		return 0
	}
}

// Index returns the i-th element of a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Get returns the value stored under key in a keyed value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindKeyed {
		return Value{}, false
	}
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether v and o have the same shape and payloads, including key order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber, KindString:
		return v.text == o.text
	case KindSequence:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindKeyed:
		if len(v.pairs) != len(o.pairs) {
			return false
		}
		for i := range v.pairs {
			if v.pairs[i].Key != o.pairs[i].Key || !v.pairs[i].Value.Equal(o.pairs[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns the compact JSON form of v.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid " + v.kind.String() + ">"
	}
	return string(b)
}
