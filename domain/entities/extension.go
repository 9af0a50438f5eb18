package entities

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ExtensionKind identifies the declared type of a tenant-defined field value
type ExtensionKind int

const (
	ExtensionNull ExtensionKind = iota
	ExtensionString
	ExtensionNumber
	ExtensionBool
)

// ExtensionValue is a typed value for a tenant-defined custom field.
// Only flat scalar values are supported; the persisted form is a flat
// string-keyed JSON object with no nesting.
type ExtensionValue struct {
	kind ExtensionKind
	str  string
	num  decimal.Decimal
	b    bool
}

// StringValue wraps a string as an extension value
func StringValue(s string) ExtensionValue {
	return ExtensionValue{kind: ExtensionString, str: s}
}

// NumberValue wraps a decimal as an extension value
func NumberValue(d decimal.Decimal) ExtensionValue {
	return ExtensionValue{kind: ExtensionNumber, num: d}
}

// BoolValue wraps a bool as an extension value
func BoolValue(v bool) ExtensionValue {
	return ExtensionValue{kind: ExtensionBool, b: v}
}

// NullValue returns the null extension value
func NullValue() ExtensionValue {
	return ExtensionValue{kind: ExtensionNull}
}

// Kind returns the declared type of the value
func (v ExtensionValue) Kind() ExtensionKind { return v.kind }

// String returns the string form of the value regardless of kind
func (v ExtensionValue) String() string {
	switch v.kind {
	case ExtensionString:
		return v.str
	case ExtensionNumber:
		return v.num.String()
	case ExtensionBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// MarshalJSON serializes the value as a bare JSON scalar
func (v ExtensionValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ExtensionString:
		return json.Marshal(v.str)
	case ExtensionNumber:
		return []byte(v.num.String()), nil
	case ExtensionBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// ExtensionField is one key/value pair in a case's extension map
type ExtensionField struct {
	Key   string
	Value ExtensionValue
}

// ExtensionMap is an ordered set of tenant-defined custom fields. Keys are
// unique; Set overwrites in place so insertion order is stable.
type ExtensionMap []ExtensionField

// Set adds or overwrites the field for key
func (m *ExtensionMap) Set(key string, value ExtensionValue) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, ExtensionField{Key: key, Value: value})
}

// Get returns the value for key and whether it was present
func (m ExtensionMap) Get(key string) (ExtensionValue, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return ExtensionValue{}, false
}

// MarshalJSON serializes the map as a flat JSON object in insertion order
func (m ExtensionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a flat JSON object, preserving key order. Nested
// objects and arrays are rejected.
func (m *ExtensionMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("extension map must be a JSON object")
	}

	out := ExtensionMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case string:
			out.Set(key, StringValue(v))
		case json.Number:
			d, err := decimal.NewFromString(v.String())
			if err != nil {
				return fmt.Errorf("invalid number for extension field %q: %w", key, err)
			}
			out.Set(key, NumberValue(d))
		case bool:
			out.Set(key, BoolValue(v))
		case nil:
			out.Set(key, NullValue())
		case json.Delim:
			return fmt.Errorf("extension field %q: nested values are not supported", key)
		default:
			return fmt.Errorf("extension field %q: unsupported value type %T", key, v)
		}
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}
