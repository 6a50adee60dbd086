package fields

import (
	"time"
)

// naiveLayout renders a datetime without any offset suffix, which is how
// timezone-naive values travel on the wire.
const naiveLayout = "2006-01-02T15:04:05.999999999"

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime coerces to time.Time and is tolerant of ISO-8601 textual input.
//
// A timezone-aware field treats input with no offset as UTC. A field built
// with NewNaiveDateTime strips offset information instead, keeping only the
// wall-clock reading.
type DateTime struct {
	naive bool
}

// NewDateTime builds a timezone-aware DateTime type.
func NewDateTime() *DateTime { return &DateTime{} }

// NewNaiveDateTime builds a DateTime type that discards offset information.
func NewNaiveDateTime() *DateTime { return &DateTime{naive: true} }

func (t *DateTime) Coerce(obj any, attr string, value any) (any, error) {
	var parsed time.Time
	switch v := value.(type) {
	case time.Time:
		parsed = v
	case string:
		var err error
		parsed, err = parseISOTime(v)
		if err != nil {
			return nil, &FormatError{Attr: attr, Format: "datetime", Value: v}
		}
	default:
		return nil, &TypeMismatchError{Attr: attr, Expected: "datetime", Actual: typeName(value)}
	}

	if t.naive {
		// Keep the wall clock, drop the offset.
		y, mo, d := parsed.Date()
		h, mi, s := parsed.Clock()
		return time.Date(y, mo, d, h, mi, s, parsed.Nanosecond(), time.UTC), nil
	}
	return parsed.UTC(), nil
}

func (t *DateTime) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (t *DateTime) ToPrimitive(obj any, attr string, value any) (any, error) {
	v, ok := value.(time.Time)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "datetime", Actual: typeName(value)}
	}
	return t.isotime(v), nil
}

func (t *DateTime) Describe() string {
	if t.naive {
		return "NaiveDateTime"
	}
	return "DateTime"
}

func (t *DateTime) Stringify(value any) string {
	if v, ok := value.(time.Time); ok {
		return t.isotime(v)
	}
	return typeName(value)
}

func (t *DateTime) isotime(v time.Time) string {
	if t.naive {
		return v.Format(naiveLayout)
	}
	return v.UTC().Format(time.RFC3339Nano)
}

func parseISOTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range datetimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
