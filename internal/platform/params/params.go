// Package params models flat provider query records whose fields may be
// intentionally unset. An unset field ("no value was ever assigned") is
// distinct from a null field ("value is known to be absent"): Compact strips
// only the former and always preserves the latter.
package params

import (
	"net/url"
	"strconv"
)

type kind int

const (
	kindUnset kind = iota
	kindNull
	kindString
	kindInt
	kindFloat
	kindBool
)

// Value is a tagged variant carried by one record field.
type Value struct {
	kind kind
	str  string
	num  int64
	fl   float64
	b    bool
}

func String(v string) Value { return Value{kind: kindString, str: v} }

func Int(v int64) Value { return Value{kind: kindInt, num: v} }

func Float(v float64) Value { return Value{kind: kindFloat, fl: v} }

func Bool(v bool) Value { return Value{kind: kindBool, b: v} }

// Null is an explicit absent value. Compact keeps null fields.
func Null() Value { return Value{kind: kindNull} }

// Unset marks a field that was never assigned. Compact drops unset fields.
func Unset() Value { return Value{kind: kindUnset} }

func (v Value) IsUnset() bool { return v.kind == kindUnset }

func (v Value) IsNull() bool { return v.kind == kindNull }

// Encode renders the value for a query string. The second return is false
// only for unset values, which contribute nothing to an encoded record.
func (v Value) Encode() (string, bool) {
	switch v.kind {
	case kindUnset:
		return "", false
	case kindNull:
		return "", true
	case kindString:
		return v.str, true
	case kindInt:
		return strconv.FormatInt(v.num, 10), true
	case kindFloat:
		return strconv.FormatFloat(v.fl, 'f', -1, 64), true
	case kindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// Field is one key/value entry of a record.
type Field struct {
	Key   string
	Value Value
}

// Record is a flat mapping from string keys to values, preserving insertion
// order. The zero value and nil are both usable empty records.
type Record []Field

func New() Record { return Record{} }

// With appends a field and returns the extended record.
func (r Record) With(key string, value Value) Record {
	return append(r, Field{Key: key, Value: value})
}

func (r Record) Get(key string) (Value, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

func (r Record) Len() int { return len(r) }

// Compact returns a fresh record containing exactly the fields of r whose
// value is not unset, in the original order. Null, zero, empty-string and
// false values are all retained unchanged. The input is never mutated.
func Compact(r Record) Record {
	out := make(Record, 0, len(r))
	for _, f := range r {
		if f.Value.IsUnset() {
			continue
		}
		out = append(out, f)
	}
	return out
}

// BuildQuery strips unset fields from a record before it is used as outbound
// query parameters. It is an alias for Compact and behaves identically on
// every input.
func BuildQuery(r Record) Record {
	return Compact(r)
}

// QueryValues encodes the record's non-unset fields as url.Values.
func (r Record) QueryValues() url.Values {
	values := url.Values{}
	for _, f := range r {
		encoded, ok := f.Value.Encode()
		if !ok {
			continue
		}
		values.Set(f.Key, encoded)
	}
	return values
}

// QueryString encodes the record in field order, without sorting keys.
func (r Record) QueryString() string {
	var buf []byte
	for _, f := range r {
		encoded, ok := f.Value.Encode()
		if !ok {
			continue
		}
		if len(buf) > 0 {
			buf = append(buf, '&')
		}
		buf = append(buf, url.QueryEscape(f.Key)...)
		buf = append(buf, '=')
		buf = append(buf, url.QueryEscape(encoded)...)
	}
	return string(buf)
}
