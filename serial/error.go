package serial

import (
	"fmt"
	"math"
	"strconv"
)

// Error is the framework-level serialization error. Besides the rendered
// message it keeps the offending value and the expectation inspectable, so
// callers can recover e.g. the actual checksum bytes from an invalid-value
// report instead of re-parsing the message.
type Error struct {
	// Msg is the complete human-readable message.
	Msg string

	// Value is the offending value for invalid-value and invalid-type
	// errors, nil otherwise.
	Value *Unexpected

	// Expected describes what was expected, when known.
	Expected string
}

func (e *Error) Error() string { return e.Msg }

// New returns an Error with a verbatim message.
func New(msg string) *Error { return &Error{Msg: msg} }

// Errorf returns an Error with a formatted message.
func Errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// InvalidValue reports a value of the right type but unacceptable content.
func InvalidValue(got Unexpected, expected string) *Error {
	return &Error{
		Msg:      fmt.Sprintf("invalid value: %s, expected %s", got, expected),
		Value:    &got,
		Expected: expected,
	}
}

// InvalidType reports a value of the wrong type altogether.
func InvalidType(got Unexpected, expected string) *Error {
	return &Error{
		Msg:      fmt.Sprintf("invalid type: %s, expected %s", got, expected),
		Value:    &got,
		Expected: expected,
	}
}

// InvalidLength reports an input of impossible length, e.g. an odd-length hex
// string. The actual length is part of the message.
func InvalidLength(n int, expected string) *Error {
	return &Error{
		Msg:      fmt.Sprintf("invalid length %d, expected %s", n, expected),
		Expected: expected,
	}
}

type unexpectedKind int

const (
	kindOther unexpectedKind = iota
	kindChar
	kindUint
	kindBytes
	kindStr
)

// Unexpected describes the offending value of an invalid-value or
// invalid-type error.
type Unexpected struct {
	kind unexpectedKind

	// Char is set for character values.
	Char rune
	// Uint is set for unsigned integer values.
	Uint uint64
	// Bytes is set for byte-sequence values.
	Bytes []byte
	// Str holds a free-form description for anything else.
	Str string
}

// UnexpectedChar describes an offending character, kept as its original code
// point.
func UnexpectedChar(c rune) Unexpected { return Unexpected{kind: kindChar, Char: c} }

// UnexpectedUint describes an offending unsigned integer.
func UnexpectedUint(v uint64) Unexpected { return Unexpected{kind: kindUint, Uint: v} }

// UnexpectedBytes describes an offending byte sequence.
func UnexpectedBytes(b []byte) Unexpected { return Unexpected{kind: kindBytes, Bytes: b} }

// UnexpectedOther describes anything without a dedicated shape.
func UnexpectedOther(desc string) Unexpected { return Unexpected{kind: kindOther, Str: desc} }

// UnexpectedString describes an offending string value.
func UnexpectedString(s string) Unexpected { return Unexpected{kind: kindStr, Str: s} }

// IsChar reports whether the value is a character.
func (u Unexpected) IsChar() bool { return u.kind == kindChar }

// IsUint reports whether the value is an unsigned integer.
func (u Unexpected) IsUint() bool { return u.kind == kindUint }

// IsBytes reports whether the value is a byte sequence.
func (u Unexpected) IsBytes() bool { return u.kind == kindBytes }

func (u Unexpected) String() string {
	switch u.kind {
	case kindChar:
		return "character " + strconv.QuoteRune(u.Char)
	case kindUint:
		return "integer " + strconv.FormatUint(u.Uint, 10)
	case kindBytes:
		return "byte array"
	case kindStr:
		return "string " + strconv.Quote(u.Str)
	default:
		if u.Str == "" {
			return "value"
		}
		return u.Str
	}
}

// Describe builds an Unexpected from an arbitrary decoded value, used by
// sources to report type mismatches.
func Describe(v any) Unexpected {
	switch v := v.(type) {
	case nil:
		return UnexpectedOther("null")
	case bool:
		return UnexpectedOther(strconv.FormatBool(v))
	case string:
		return UnexpectedString(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return UnexpectedOther("integer " + strconv.FormatInt(int64(v), 10))
		}
		return UnexpectedOther("floating point " + strconv.FormatFloat(v, 'g', -1, 64))
	case uint64:
		return UnexpectedUint(v)
	case int64:
		if v >= 0 {
			return UnexpectedUint(uint64(v))
		}
		return UnexpectedOther("integer " + strconv.FormatInt(v, 10))
	case []byte:
		return UnexpectedBytes(v)
	case []any:
		return UnexpectedOther("sequence")
	case map[string]any:
		return UnexpectedOther("map")
	default:
		return UnexpectedOther(fmt.Sprintf("%T value", v))
	}
}
