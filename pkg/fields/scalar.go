package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// String coerces to a Go string. Numeric and time values convert to their
// textual form; anything else is rejected.
type String struct{}

func (String) Coerce(obj any, attr string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	default:
		return nil, &TypeMismatchError{Attr: attr, Expected: "string", Actual: typeName(value)}
	}
}

func (t String) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (String) ToPrimitive(obj any, attr string, value any) (any, error) {
	return value, nil
}

func (String) Describe() string { return "String" }

func (String) Stringify(value any) string { return fmt.Sprintf("'%s'", value) }

// SensitiveString is a String whose human-readable rendering is masked.
// Serialization is deliberately not masked: the wire form must round-trip,
// only debug and log output hides the secret.
type SensitiveString struct {
	String
}

func (SensitiveString) Describe() string { return "SensitiveString" }

func (SensitiveString) Stringify(value any) string { return "'***'" }

// Enum is a String restricted to a fixed set of valid values.
type Enum struct {
	String
	valid []string
}

// NewEnum builds an Enum over the given valid values. An empty set is a
// schema-definition error and fails immediately.
func NewEnum(validValues []string) (*Enum, error) {
	if len(validValues) == 0 {
		return nil, &EnumValueError{Attr: "init"}
	}
	valid := make([]string, len(validValues))
	copy(valid, validValues)
	return &Enum{valid: valid}, nil
}

// ValidValues returns a copy of the declared valid-value set.
func (t *Enum) ValidValues() []string {
	out := make([]string, len(t.valid))
	copy(out, t.valid)
	return out
}

func (t *Enum) Coerce(obj any, attr string, value any) (any, error) {
	coerced, err := t.String.Coerce(obj, attr, value)
	if err != nil {
		return nil, err
	}
	s := coerced.(string)
	for _, v := range t.valid {
		if s == v {
			return s, nil
		}
	}
	return nil, &EnumValueError{Attr: attr, Value: value, Valid: t.valid}
}

func (t *Enum) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (t *Enum) Describe() string {
	return fmt.Sprintf("Enum(%s)", strings.Join(t.valid, ","))
}

// UUID coerces to the canonical lower-case textual UUID form.
type UUID struct{}

func (UUID) Coerce(obj any, attr string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		u, err := uuid.Parse(v)
		if err != nil {
			return nil, &FormatError{Attr: attr, Format: "uuid", Value: v}
		}
		return u.String(), nil
	case uuid.UUID:
		return v.String(), nil
	default:
		return nil, &TypeMismatchError{Attr: attr, Expected: "uuid", Actual: typeName(value)}
	}
}

func (t UUID) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (UUID) ToPrimitive(obj any, attr string, value any) (any, error) {
	return value, nil
}

func (UUID) Describe() string { return "UUID" }

func (UUID) Stringify(value any) string { return fmt.Sprintf("%s", value) }

var macPattern = regexp.MustCompile(`^[0-9a-f]{2}(:[0-9a-f]{2}){5}$`)

// MACAddress coerces to the lower-cased, colon-separated hardware address
// form. Dash separators and upper-case input are normalized before
// validation.
type MACAddress struct{}

func (MACAddress) Coerce(obj any, attr string, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "MAC address", Actual: typeName(value)}
	}
	normalized := strings.ReplaceAll(strings.ToLower(s), "-", ":")
	if !macPattern.MatchString(normalized) {
		return nil, &FormatError{Attr: attr, Format: "MAC address", Value: s}
	}
	return normalized, nil
}

func (t MACAddress) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (MACAddress) ToPrimitive(obj any, attr string, value any) (any, error) {
	return value, nil
}

func (MACAddress) Describe() string { return "MACAddress" }

func (MACAddress) Stringify(value any) string { return fmt.Sprintf("%s", value) }

// Integer coerces to int64. Floats truncate the way Go conversion does, and
// decimal strings are parsed.
type Integer struct{}

func (Integer) Coerce(obj any, attr string, value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, &TypeMismatchError{Attr: attr, Expected: "integer", Actual: typeName(value)}
		}
		return n, nil
	default:
		return nil, &TypeMismatchError{Attr: attr, Expected: "integer", Actual: typeName(value)}
	}
}

func (t Integer) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (Integer) ToPrimitive(obj any, attr string, value any) (any, error) {
	return value, nil
}

func (Integer) Describe() string { return "Integer" }

func (Integer) Stringify(value any) string { return fmt.Sprintf("%v", value) }

// Float coerces to float64. Integers widen and numeric strings are parsed.
type Float struct{}

func (Float) Coerce(obj any, attr string, value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, &TypeMismatchError{Attr: attr, Expected: "float", Actual: typeName(value)}
		}
		return f, nil
	default:
		return nil, &TypeMismatchError{Attr: attr, Expected: "float", Actual: typeName(value)}
	}
}

func (t Float) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (Float) ToPrimitive(obj any, attr string, value any) (any, error) {
	return value, nil
}

func (Float) Describe() string { return "Float" }

func (Float) Stringify(value any) string { return fmt.Sprintf("%v", value) }

// Boolean coerces to bool. Numeric values follow the nonzero convention;
// strings are rejected, FlexibleBoolean exists for those.
type Boolean struct{}

func (Boolean) Coerce(obj any, attr string, value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		return nil, &TypeMismatchError{Attr: attr, Expected: "boolean", Actual: typeName(value)}
	}
}

func (t Boolean) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (Boolean) ToPrimitive(obj any, attr string, value any) (any, error) {
	return value, nil
}

func (Boolean) Describe() string { return "Boolean" }

func (Boolean) Stringify(value any) string { return fmt.Sprintf("%v", value) }

var truthyTokens = map[string]bool{
	"1": true, "t": true, "true": true, "on": true, "y": true, "yes": true,
}

// FlexibleBoolean parses human truthy tokens (1, t, true, on, y, yes,
// case-insensitive). Anything unrecognized coerces to false rather than
// failing, mirroring lenient boolean parsing of config-style input.
type FlexibleBoolean struct {
	Boolean
}

func (t FlexibleBoolean) Coerce(obj any, attr string, value any) (any, error) {
	if s, ok := value.(string); ok {
		return truthyTokens[strings.ToLower(strings.TrimSpace(s))], nil
	}
	return t.Boolean.Coerce(obj, attr, value)
}

func (t FlexibleBoolean) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (FlexibleBoolean) Describe() string { return "FlexibleBoolean" }
