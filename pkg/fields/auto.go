package fields

// Convenience constructors for the common field shapes, mirroring the way
// schemas are usually declared: one call per attribute.

// StringField declares a string attribute.
func StringField(opts ...Option) *Field { return New(String{}, opts...) }

// SensitiveStringField declares a string attribute masked in stringified
// output.
func SensitiveStringField(opts ...Option) *Field { return New(SensitiveString{}, opts...) }

// EnumField declares a string attribute restricted to validValues.
func EnumField(validValues []string, opts ...Option) (*Field, error) {
	enum, err := NewEnum(validValues)
	if err != nil {
		return nil, err
	}
	return New(enum, opts...), nil
}

// UUIDField declares a UUID attribute.
func UUIDField(opts ...Option) *Field { return New(UUID{}, opts...) }

// MACAddressField declares a hardware-address attribute.
func MACAddressField(opts ...Option) *Field { return New(MACAddress{}, opts...) }

// IntegerField declares an integer attribute.
func IntegerField(opts ...Option) *Field { return New(Integer{}, opts...) }

// FloatField declares a float attribute.
func FloatField(opts ...Option) *Field { return New(Float{}, opts...) }

// BooleanField declares a boolean attribute.
func BooleanField(opts ...Option) *Field { return New(Boolean{}, opts...) }

// FlexibleBooleanField declares a boolean attribute tolerant of textual
// truthy/falsy tokens.
func FlexibleBooleanField(opts ...Option) *Field { return New(FlexibleBoolean{}, opts...) }

// DateTimeField declares a timezone-aware datetime attribute.
func DateTimeField(opts ...Option) *Field { return New(NewDateTime(), opts...) }

// NaiveDateTimeField declares a datetime attribute without offset
// information.
func NaiveDateTimeField(opts ...Option) *Field { return New(NewNaiveDateTime(), opts...) }

// VersionPredicateField declares a version-range attribute.
func VersionPredicateField(opts ...Option) *Field { return New(VersionPredicate{}, opts...) }

// IPAddressField declares an IP address attribute of either family.
func IPAddressField(opts ...Option) *Field { return New(IPAddress{}, opts...) }

// IPNetworkField declares an IP network attribute of either family.
func IPNetworkField(opts ...Option) *Field { return New(IPNetwork{}, opts...) }

// ListOfStringsField declares a list-of-strings attribute.
func ListOfStringsField(opts ...Option) *Field { return New(NewList(String{}), opts...) }

// ListOfEnumField declares a list attribute of enum values.
func ListOfEnumField(validValues []string, opts ...Option) (*Field, error) {
	enum, err := NewEnum(validValues)
	if err != nil {
		return nil, err
	}
	return New(NewList(enum), opts...), nil
}

// DictOfStringsField declares a string-keyed mapping of strings.
func DictOfStringsField(opts ...Option) *Field { return New(NewMapping(String{}), opts...) }

// DictOfNullableStringsField declares a string-keyed mapping whose values
// may be null.
func DictOfNullableStringsField(opts ...Option) *Field {
	return New(NewMapping(String{}, WithNullable()), opts...)
}

// SetOfIntegersField declares a set-of-integers attribute.
func SetOfIntegersField(opts ...Option) *Field { return New(NewSet(Integer{}), opts...) }

// ObjectField declares a nested-object attribute of the named schema.
func ObjectField(name string, objOpts []ObjectReferenceOption, opts ...Option) *Field {
	return New(NewObjectReference(name, objOpts...), opts...)
}

// ListOfObjectsField declares a list attribute of nested objects of the
// named schema.
func ListOfObjectsField(name string, objOpts []ObjectReferenceOption, opts ...Option) *Field {
	return New(NewList(NewObjectReference(name, objOpts...)), opts...)
}
