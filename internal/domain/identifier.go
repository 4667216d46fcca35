package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier is the engine-wide representation of an entity identifier.
// Upstream stores hand out small integers for older records and opaque string
// tokens for newer ones; every join between the local cache and the system of
// record goes through Equal so the representation can keep shifting without
// touching callers.
type Identifier string

// NewIdentifier converts any supported raw identifier into the canonical
// string form. Nil and empty inputs yield the zero Identifier.
func NewIdentifier(raw any) Identifier {
	return Identifier(stringify(raw))
}

// IsZero reports whether the identifier is absent.
func (id Identifier) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// String returns the canonical string representation.
func (id Identifier) String() string {
	return string(id)
}

// Equal reports whether two raw identifiers refer to the same entity. Both
// absent counts as equal; one side absent does not. The comparison is done on
// string representations so integer and token encodings of the same id match.
// It never panics, whatever the dynamic types of its arguments.
func Equal(a, b any) bool {
	sa, sb := stringify(a), stringify(b)
	if sa == "" && sb == "" {
		return true
	}
	if sa == "" || sb == "" {
		return false
	}
	return sa == sb
}

// Lookup scans the collection for the element whose key matches id, using
// Equal for the comparison. It returns the zero value and false when no
// element matches or the collection is empty.
func Lookup[T any](collection []T, id any, key func(T) any) (T, bool) {
	var zero T
	if key == nil {
		return zero, false
	}
	for _, item := range collection {
		if Equal(key(item), id) {
			return item, true
		}
	}
	return zero, false
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case Identifier:
		return strings.TrimSpace(string(v))
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		// JSON decoding surfaces numeric ids as float64.
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
