package fields

import (
	"errors"
	"testing"
)

func TestStringCoerce(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := String{}.Coerce(nil, "attr", tc.value)
			if err != nil {
				t.Fatalf("coerce %v: %v", tc.value, err)
			}
			if got != tc.want {
				t.Fatalf("coerce %v: got %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestStringCoerceRejectsBool(t *testing.T) {
	_, err := String{}.Coerce(nil, "attr", true)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Attr != "attr" {
		t.Fatalf("attr mismatch: got %q", mismatch.Attr)
	}
}

func TestSensitiveStringMasksOnlyStringify(t *testing.T) {
	var secret SensitiveString
	coerced, err := secret.Coerce(nil, "password", "hunter2")
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if coerced != "hunter2" {
		t.Fatalf("coerce must not mask: got %q", coerced)
	}
	primitive, err := secret.ToPrimitive(nil, "password", coerced)
	if err != nil {
		t.Fatalf("to primitive: %v", err)
	}
	if primitive != "hunter2" {
		t.Fatalf("serialization must not mask: got %q", primitive)
	}
	if got := secret.Stringify(coerced); got != "'***'" {
		t.Fatalf("stringify must mask: got %q", got)
	}
}

func TestEnumConstruction(t *testing.T) {
	if _, err := NewEnum(nil); err == nil {
		t.Fatalf("expected empty valid-value set to fail")
	} else {
		var enumErr *EnumValueError
		if !errors.As(err, &enumErr) {
			t.Fatalf("expected EnumValueError, got %v", err)
		}
	}
}

func TestEnumCoerce(t *testing.T) {
	enum, err := NewEnum([]string{"a", "b"})
	if err != nil {
		t.Fatalf("new enum: %v", err)
	}
	got, err := enum.Coerce(nil, "attr", "a")
	if err != nil {
		t.Fatalf("coerce valid value: %v", err)
	}
	if got != "a" {
		t.Fatalf("got %q, want %q", got, "a")
	}
	_, err = enum.Coerce(nil, "attr", "c")
	var enumErr *EnumValueError
	if !errors.As(err, &enumErr) {
		t.Fatalf("expected EnumValueError for out-of-set value, got %v", err)
	}
}

func TestUUIDCoerce(t *testing.T) {
	got, err := UUID{}.Coerce(nil, "id", "9E1A6C36-95F1-4E25-A35E-B38F2D4DE43F")
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if got != "9e1a6c36-95f1-4e25-a35e-b38f2d4de43f" {
		t.Fatalf("expected canonical lower-case form, got %q", got)
	}
	_, err = UUID{}.Coerce(nil, "id", "not-a-uuid")
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestMACAddressNormalizes(t *testing.T) {
	got, err := MACAddress{}.Coerce(nil, "mac", "AA-BB-CC-DD-EE-FF")
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if got != "aa:bb:cc:dd:ee:ff" {
		t.Fatalf("got %q, want %q", got, "aa:bb:cc:dd:ee:ff")
	}
}

func TestMACAddressRejectsMalformed(t *testing.T) {
	_, err := MACAddress{}.Coerce(nil, "mac", "zz:bb:cc:dd:ee:ff")
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestIntegerCoerce(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int64
	}{
		{"int", 7, 7},
		{"int64", int64(7), 7},
		{"float truncates", 5.9, 5},
		{"string", "12", 12},
		{"bool", true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Integer{}.Coerce(nil, "n", tc.value)
			if err != nil {
				t.Fatalf("coerce %v: %v", tc.value, err)
			}
			if got != tc.want {
				t.Fatalf("coerce %v: got %v, want %v", tc.value, got, tc.want)
			}
		})
	}

	if _, err := (Integer{}).Coerce(nil, "n", "twelve"); err == nil {
		t.Fatalf("expected non-numeric string to fail")
	}
}

func TestFloatCoerce(t *testing.T) {
	got, err := Float{}.Coerce(nil, "f", "1.25")
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if got != 1.25 {
		t.Fatalf("got %v, want 1.25", got)
	}
}

func TestBooleanRejectsStrings(t *testing.T) {
	_, err := Boolean{}.Coerce(nil, "b", "true")
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
}

func TestFlexibleBooleanTokens(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{"yes", true},
		{"ON", true},
		{"1", true},
		{"t", true},
		{"no", false},
		{"off", false},
		{"whatever", false},
		{true, true},
		{0, false},
	}
	for _, tc := range cases {
		got, err := FlexibleBoolean{}.Coerce(nil, "b", tc.value)
		if err != nil {
			t.Fatalf("coerce %v: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("coerce %v: got %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		fieldType FieldType
		value     any
	}{
		{"string", String{}, "hello"},
		{"integer", Integer{}, 42},
		{"float", Float{}, 2.5},
		{"boolean", Boolean{}, true},
		{"uuid", UUID{}, "9e1a6c36-95f1-4e25-a35e-b38f2d4de43f"},
		{"mac", MACAddress{}, "aa:bb:cc:dd:ee:ff"},
		{"version predicate", VersionPredicate{}, ">= 1.0, < 2.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coerced, err := tc.fieldType.Coerce(nil, "attr", tc.value)
			if err != nil {
				t.Fatalf("coerce: %v", err)
			}
			primitive, err := tc.fieldType.ToPrimitive(nil, "attr", coerced)
			if err != nil {
				t.Fatalf("to primitive: %v", err)
			}
			back, err := tc.fieldType.FromPrimitive(nil, "attr", primitive)
			if err != nil {
				t.Fatalf("from primitive: %v", err)
			}
			if back != coerced {
				t.Fatalf("round trip changed value: %v != %v", back, coerced)
			}
		})
	}
}
