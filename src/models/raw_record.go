package models

import "strings"

// -----------------------------------------------------------------------------

// MValueKind enumerates the scalar shapes a provider field can take.
type MValueKind int

const (
	KindNull MValueKind = iota
	KindNumber
	KindText
	KindBool
)

// -----------------------------------------------------------------------------

// MValue is one provider scalar. Only the field matching Kind is meaningful.
type MValue struct {
	Kind   MValueKind
	Number float64
	Text   string
	Bool   bool
}

func NumberValue(v float64) MValue { return MValue{Kind: KindNumber, Number: v} }
func TextValue(v string) MValue    { return MValue{Kind: KindText, Text: v} }
func BoolValue(v bool) MValue      { return MValue{Kind: KindBool, Bool: v} }
func NullValue() MValue            { return MValue{Kind: KindNull} }

// IsNull reports whether the provider sent an explicit null.
func (v MValue) IsNull() bool {
	return v.Kind == KindNull
}

// -----------------------------------------------------------------------------

// MRawRecord is the flattened key/value record returned by a provider for one
// ticker. It is never persisted as-is.
type MRawRecord struct {
	values map[string]MValue
}

func NewRawRecord() MRawRecord {
	return MRawRecord{values: make(map[string]MValue)}
}

// Set stores a value. It returns false and leaves the record unchanged when
// the key is already present, so the first occurrence wins.
func (r *MRawRecord) Set(key string, v MValue) bool {
	if r.values == nil {
		r.values = make(map[string]MValue)
	}
	if _, exists := r.values[key]; exists {
		return false
	}
	r.values[key] = v
	return true
}

// Lookup returns the value for key and whether the key was present at all.
func (r MRawRecord) Lookup(key string) (MValue, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r MRawRecord) Len() int {
	return len(r.values)
}

// -----------------------------------------------------------------------------

// Ticker is a case-insensitive security identifier.
type Ticker string

// NormalizeTicker trims whitespace and upper-cases the symbol.
func NormalizeTicker(s string) Ticker {
	return Ticker(strings.ToUpper(strings.TrimSpace(s)))
}

func (t Ticker) String() string {
	return string(t)
}
