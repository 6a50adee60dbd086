package fields

import (
	"fmt"
	"net/netip"
)

func coerceAddr(attr string, value any) (netip.Addr, error) {
	switch v := value.(type) {
	case netip.Addr:
		return v.Unmap(), nil
	case string:
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return netip.Addr{}, &FormatError{Attr: attr, Format: "IP address", Value: v}
		}
		return addr.Unmap(), nil
	default:
		return netip.Addr{}, &TypeMismatchError{Attr: attr, Expected: "IP address", Actual: typeName(value)}
	}
}

// IPAddress coerces to netip.Addr, accepting either address family.
// 4-in-6 mapped input is unmapped to its IPv4 form.
type IPAddress struct{}

func (IPAddress) Coerce(obj any, attr string, value any) (any, error) {
	return coerceAddr(attr, value)
}

func (t IPAddress) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (IPAddress) ToPrimitive(obj any, attr string, value any) (any, error) {
	v, ok := value.(netip.Addr)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "IP address", Actual: typeName(value)}
	}
	return v.String(), nil
}

func (IPAddress) Describe() string { return "IPAddress" }

func (IPAddress) Stringify(value any) string { return fmt.Sprintf("%v", value) }

// IPV4Address restricts IPAddress to the IPv4 family.
type IPV4Address struct {
	IPAddress
}

func (t IPV4Address) Coerce(obj any, attr string, value any) (any, error) {
	addr, err := coerceAddr(attr, value)
	if err != nil {
		return nil, err
	}
	if !addr.Is4() {
		return nil, &FormatError{Attr: attr, Format: "IPv4 address", Value: addr.String()}
	}
	return addr, nil
}

func (t IPV4Address) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (IPV4Address) Describe() string { return "IPV4Address" }

// IPV6Address restricts IPAddress to the IPv6 family.
type IPV6Address struct {
	IPAddress
}

func (t IPV6Address) Coerce(obj any, attr string, value any) (any, error) {
	addr, err := coerceAddr(attr, value)
	if err != nil {
		return nil, err
	}
	if !addr.Is6() {
		return nil, &FormatError{Attr: attr, Format: "IPv6 address", Value: addr.String()}
	}
	return addr, nil
}

func (t IPV6Address) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (IPV6Address) Describe() string { return "IPV6Address" }

func coercePrefix(attr string, value any) (netip.Prefix, error) {
	switch v := value.(type) {
	case netip.Prefix:
		return v.Masked(), nil
	case string:
		prefix, err := netip.ParsePrefix(v)
		if err != nil {
			return netip.Prefix{}, &FormatError{Attr: attr, Format: "IP network", Value: v}
		}
		return prefix.Masked(), nil
	default:
		return netip.Prefix{}, &TypeMismatchError{Attr: attr, Expected: "IP network", Actual: typeName(value)}
	}
}

// IPNetwork coerces to netip.Prefix in masked (canonical) form, accepting
// either address family.
type IPNetwork struct{}

func (IPNetwork) Coerce(obj any, attr string, value any) (any, error) {
	return coercePrefix(attr, value)
}

func (t IPNetwork) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (IPNetwork) ToPrimitive(obj any, attr string, value any) (any, error) {
	v, ok := value.(netip.Prefix)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "IP network", Actual: typeName(value)}
	}
	return v.String(), nil
}

func (IPNetwork) Describe() string { return "IPNetwork" }

func (IPNetwork) Stringify(value any) string { return fmt.Sprintf("%v", value) }

// IPV4Network restricts IPNetwork to the IPv4 family.
type IPV4Network struct {
	IPNetwork
}

func (t IPV4Network) Coerce(obj any, attr string, value any) (any, error) {
	prefix, err := coercePrefix(attr, value)
	if err != nil {
		return nil, err
	}
	if !prefix.Addr().Is4() {
		return nil, &FormatError{Attr: attr, Format: "IPv4 network", Value: prefix.String()}
	}
	return prefix, nil
}

func (t IPV4Network) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (IPV4Network) Describe() string { return "IPV4Network" }

// IPV6Network restricts IPNetwork to the IPv6 family.
type IPV6Network struct {
	IPNetwork
}

func (t IPV6Network) Coerce(obj any, attr string, value any) (any, error) {
	prefix, err := coercePrefix(attr, value)
	if err != nil {
		return nil, err
	}
	if !prefix.Addr().Is6() {
		return nil, &FormatError{Attr: attr, Format: "IPv6 network", Value: prefix.String()}
	}
	return prefix, nil
}

func (t IPV6Network) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (IPV6Network) Describe() string { return "IPV6Network" }
