package sanitizer

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// FromAny converts a decoded Go value into a Value. It understands the shapes
// produced by encoding/json (including json.Number) plus common string
// collections. Map keys are sorted because Go maps carry no order.
func FromAny(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if !isNumberLiteral(string(t)) {
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, t)
		}
		return Number(t), nil
	case float64:
		return fromFloat(t)
	case float32:
		return fromFloat(float64(t))
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(t, 10))), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindSequence, items: items}, nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}
		return Value{kind: KindSequence, items: items}, nil
	case map[string]any:
		pairs := make([]Pair, 0, len(t))
		for _, k := range sortedKeys(t) {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
		return Value{kind: KindKeyed, pairs: pairs}, nil
	case map[string]string:
		pairs := make([]Pair, 0, len(t))
		for _, k := range sortedKeys(t) {
			pairs = append(pairs, Pair{Key: k, Value: String(t[k])})
		}
		return Value{kind: KindKeyed, pairs: pairs}, nil
	case map[string][]string:
		pairs := make([]Pair, 0, len(t))
		for _, k := range sortedKeys(t) {
			v, _ := FromAny(t[k])
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
		return Value{kind: KindKeyed, pairs: pairs}, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, in)
	}
}

// Any converts v into plain Go values: nil, bool, json.Number, string, []any and
// map[string]any. Key order is lost in the map.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.text)
	case KindString:
		return v.text
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Any()
		}
		return out
	case KindKeyed:
		out := make(map[string]any, len(v.pairs))
		for _, p := range v.pairs {
			out[p.Key] = p.Value.Any()
		}
		return out
	default:
		return nil
	}
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	return Float(f), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
