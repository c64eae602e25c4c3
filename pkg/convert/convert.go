// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning a default instead of an error when parsing fails). This is
useful in API handler contexts parsing query parameters and path segments.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as an integer
	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}

// ToPositiveIntD converts a string to a positive int. Zero, negative and
// unparseable input yield def.
func ToPositiveIntD(str string, def int) int {
	v := ToIntD(str, def)
	if v <= 0 {
		return def
	}
	return v
}

// ToID parses a path identifier. It reports false for anything that is not
// a positive integer that fits an INTEGER column.
func ToID(str string) (int, bool) {
	v, err := strconv.ParseInt(str, 10, 32)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(v), true
}
