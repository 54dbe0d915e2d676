package validator

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a JSON request value that remembers whether it was sent at all.
// Absent, null and a concrete value are three different states.
type Field struct {
	present bool
	raw     json.RawMessage
}

// UnmarshalJSON is only invoked for keys present in the body, including
// explicit nulls.
func (f *Field) UnmarshalJSON(b []byte) error {
	f.present = true
	f.raw = append(f.raw[:0], b...)
	return nil
}

// StringField builds a present field from a plain string, e.g. a path
// parameter.
func StringField(s string) Field {
	b, _ := json.Marshal(s)
	return Field{present: true, raw: b}
}

// ValueField builds a present field from any JSON-encodable value.
func ValueField(v interface{}) Field {
	b, err := json.Marshal(v)
	if err != nil {
		return Field{}
	}
	return Field{present: true, raw: b}
}

func (f Field) Present() bool { return f.present }

func (f Field) IsNull() bool {
	return f.present && bytes.Equal(bytes.TrimSpace(f.raw), []byte("null"))
}

// AsString returns the value when it is a JSON string.
func (f Field) AsString() (string, bool) {
	if !f.present || f.IsNull() {
		return "", false
	}
	var s string
	if err := json.Unmarshal(f.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// AsTrimmedString is AsString with surrounding whitespace removed.
func (f Field) AsTrimmedString() (string, bool) {
	s, ok := f.AsString()
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// AsBool returns the value when it is a JSON boolean. Strings such as "true"
// are not accepted.
func (f Field) AsBool() (bool, bool) {
	if !f.present || f.IsNull() {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(f.raw, &b); err != nil {
		return false, false
	}
	return b, true
}

// Cleared reports a reference that was explicitly sent as null or "".
func (f Field) Cleared() bool {
	if f.IsNull() {
		return true
	}
	s, ok := f.AsString()
	return ok && s == ""
}
