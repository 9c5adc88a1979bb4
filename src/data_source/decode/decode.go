// Package decode flattens provider JSON payloads into models.MRawRecord.
//
// Yahoo quoteSummary wraps most numbers as {"raw": 23.5, "fmt": "23.50"} and
// sends {} for values it does not have. Both shapes, as well as plain
// scalars, are accepted. Arrays and deeper objects are not scalars and are
// skipped.
package decode

import (
	"errors"
	"fmt"

	"stock-fundamentals/src/models"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformed means the payload is not valid JSON or lacks the expected envelope.
	ErrMalformed = errors.New("malformed provider payload")
	// ErrEmpty means the payload was well formed but held no usable field.
	ErrEmpty = errors.New("empty provider payload")
)

// -----------------------------------------------------------------------------

// APIError is an error object reported inside a provider payload.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("yahoo api error: %s", e.Code)
	}
	return fmt.Sprintf("yahoo api error: %s - %s", e.Code, e.Description)
}

// -----------------------------------------------------------------------------

// QuoteSummaryError extracts quoteSummary.error from body, or nil if the body
// carries none.
func QuoteSummaryError(body []byte) *APIError {
	if !gjson.ValidBytes(body) {
		return nil
	}
	e := gjson.GetBytes(body, "quoteSummary.error")
	if !e.Exists() || e.Type == gjson.Null {
		return nil
	}
	return &APIError{
		Code:        e.Get("code").String(),
		Description: e.Get("description").String(),
	}
}

// -----------------------------------------------------------------------------

// QuoteSummary flattens quoteSummary.result[0] across all of its modules.
// When a key appears in more than one module the first occurrence wins.
func QuoteSummary(body []byte) (models.MRawRecord, error) {
	if !gjson.ValidBytes(body) {
		return models.MRawRecord{}, ErrMalformed
	}

	root := gjson.GetBytes(body, "quoteSummary")
	if !root.IsObject() {
		return models.MRawRecord{}, fmt.Errorf("%w: missing quoteSummary", ErrMalformed)
	}
	if apiErr := QuoteSummaryError(body); apiErr != nil {
		return models.MRawRecord{}, apiErr
	}

	result := root.Get("result.0")
	if !result.IsObject() {
		return models.MRawRecord{}, ErrEmpty
	}

	record := models.NewRawRecord()
	result.ForEach(func(_, module gjson.Result) bool {
		if module.IsObject() {
			addFields(&record, module)
		}
		return true
	})

	if record.Len() == 0 {
		return models.MRawRecord{}, ErrEmpty
	}
	return record, nil
}

// -----------------------------------------------------------------------------

// FlatObject decodes a single JSON object of scalars, e.g.
// {"trailingPE": 23.5, "trailingEps": 4.12}.
func FlatObject(body []byte) (models.MRawRecord, error) {
	if !gjson.ValidBytes(body) {
		return models.MRawRecord{}, ErrMalformed
	}
	obj := gjson.ParseBytes(body)
	if !obj.IsObject() {
		return models.MRawRecord{}, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	record := models.NewRawRecord()
	addFields(&record, obj)
	if record.Len() == 0 {
		return models.MRawRecord{}, ErrEmpty
	}
	return record, nil
}

// -----------------------------------------------------------------------------

// Any dispatches on the payload shape: a quoteSummary envelope or a flat object.
func Any(body []byte) (models.MRawRecord, error) {
	if gjson.ValidBytes(body) && gjson.GetBytes(body, "quoteSummary").Exists() {
		return QuoteSummary(body)
	}
	return FlatObject(body)
}

// -----------------------------------------------------------------------------

func addFields(record *models.MRawRecord, obj gjson.Result) {
	obj.ForEach(func(key, val gjson.Result) bool {
		if v, ok := toValue(val); ok {
			record.Set(key.String(), v)
		}
		return true
	})
}

// -----------------------------------------------------------------------------

func toValue(val gjson.Result) (models.MValue, bool) {
	if val.IsArray() {
		return models.MValue{}, false
	}

	if val.IsObject() {
		if raw := val.Get("raw"); raw.Exists() {
			return scalar(raw)
		}
		if f := val.Get("fmt"); f.Exists() {
			return scalar(f)
		}
		if len(val.Map()) == 0 {
			return models.NullValue(), true
		}
		return models.MValue{}, false
	}

	return scalar(val)
}

// -----------------------------------------------------------------------------

func scalar(val gjson.Result) (models.MValue, bool) {
	switch val.Type {
	case gjson.Number:
		return models.NumberValue(val.Num), true
	case gjson.String:
		return models.TextValue(val.Str), true
	case gjson.True:
		return models.BoolValue(true), true
	case gjson.False:
		return models.BoolValue(false), true
	case gjson.Null:
		return models.NullValue(), true
	default:
		return models.MValue{}, false
	}
}
