package sanitizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxDecodeDepth bounds nesting while decoding JSON into a Value.
const MaxDecodeDepth = 10000

// ParseJSON decodes a single JSON document into a Value, keeping object key order.
// Trailing data after the document is an error.
func ParseJSON(data []byte) (Value, error) {
	return DecodeJSON(bytes.NewReader(data))
}

// DecodeJSON reads a single JSON document from r into a Value.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: unexpected data after JSON document", ErrInvalidJSON)
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. HTML characters are not escaped so
// sanitized entities such as "&lt;" stay readable.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := encodeValue(&buf, enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, fmt.Errorf("%w: empty document", ErrInvalidJSON)
		}
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		if depth >= MaxDecodeDepth {
			return Value{}, fmt.Errorf("%w: limit %d", ErrMaxDepthExceeded, MaxDecodeDepth)
		}
		switch t {
		case '[':
			return decodeSequence(dec, depth)
		case '{':
			return decodeKeyed(dec, depth)
		}
	}
	return Value{}, fmt.Errorf("%w: unexpected token %v", ErrInvalidJSON, tok)
}

func decodeSequence(dec *json.Decoder, depth int) (Value, error) {
	items := []Value{}
	for dec.More() {
		item, err := decodeValue(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return Value{kind: KindSequence, items: items}, nil
}

func decodeKeyed(dec *json.Decoder, depth int) (Value, error) {
	pairs := []Pair{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key must be a string", ErrInvalidJSON)
		}
		item, err := decodeValue(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: key, Value: item})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return Keyed(pairs...), nil
}

func encodeValue(buf *bytes.Buffer, enc *json.Encoder, v Value) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if !isNumberLiteral(v.text) {
			return fmt.Errorf("%w: %q", ErrInvalidNumber, v.text)
		}
		buf.WriteString(v.text)
	case KindString:
		encodeString(buf, enc, v.text)
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, enc, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindKeyed:
		buf.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeString(buf, enc, p.Key)
			buf.WriteByte(':')
			if err := encodeValue(buf, enc, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, v.kind)
	}
	return nil
}

// Encoding a string never fails; the encoder appends a newline that is dropped.
func encodeString(buf *bytes.Buffer, enc *json.Encoder, s string) {
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}

func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}
