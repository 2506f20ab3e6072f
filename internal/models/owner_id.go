package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OwnerID is a caller-supplied owner reference as it appears on the wire.
// Clients send it as a JSON number, a numeric string, null, or leave it out
// entirely, and the ownership contract is numeric equality after coercion:
// "5" and 5 are the same owner, while a non-numeric string coerces to NaN
// and never matches anything.
//
// The zero value means the field was not supplied. JSON null and the empty
// string also count as not supplied.
type OwnerID struct {
	present bool
	raw     string
}

// OwnerIDFromString builds an OwnerID from a textual value such as a query
// parameter. An empty (or all-whitespace) string counts as not supplied.
func OwnerIDFromString(s string) OwnerID {
	s = strings.TrimSpace(s)
	if s == "" {
		return OwnerID{}
	}
	return OwnerID{present: true, raw: s}
}

// OwnerIDFromInt builds a supplied, numeric OwnerID.
func OwnerIDFromInt(n int64) OwnerID {
	return OwnerID{present: true, raw: strconv.FormatInt(n, 10)}
}

func (o *OwnerID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*o = OwnerID{}
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*o = OwnerIDFromString(str)
		return nil
	}
	// Bare literal: a number, or some other token that will coerce to NaN.
	*o = OwnerID{present: true, raw: s}
	return nil
}

// Present reports whether the caller supplied a non-empty value.
func (o OwnerID) Present() bool {
	return o.present
}

// Num returns the coerced numeric value. ok is false when the value is
// non-numeric (the NaN case), in which case it can never match an owner.
func (o OwnerID) Num() (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(o.raw), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Int returns the value as an integer for storage. ok is false when the
// value is non-numeric or has a fractional part.
func (o OwnerID) Int() (int64, bool) {
	n, ok := o.Num()
	if !ok {
		return 0, false
	}
	i := int64(n)
	if float64(i) != n {
		return 0, false
	}
	return i, true
}

// Matches reports whether the claimed value equals the stored owner under
// numeric comparison. A nil (NULL) stored owner matches no claimed value,
// and a non-numeric claimed value matches no owner.
func (o OwnerID) Matches(owner *int64) bool {
	n, ok := o.Num()
	if !ok || owner == nil {
		return false
	}
	return n == float64(*owner)
}
