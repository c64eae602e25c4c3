// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// # Field Predicates
//
// The functions below interpret raw decoded input: strings, booleans,
// json.Number values from JSON bodies, or strings from multipart forms.

// dateLayouts are the accepted textual date formats, tried in order.
var dateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// IsString reports whether v holds a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// RuneLength returns the character count of a string value, or 0 for other types.
func RuneLength(v any) int {
	s, _ := v.(string)
	return utf8.RuneCountInString(s)
}

// IsNonEmptyString reports whether v is a non-empty string whose character count
// is within [min, max]. A max of 0 means "no upper bound".
func IsNonEmptyString(v any, min, max int) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return false
	}

	length := utf8.RuneCountInString(s)
	if length < min {
		return false
	}
	return max <= 0 || length <= max
}

// LengthMessage describes the expected length bounds and the observed length of v.
func LengthMessage(v any, min, max int) string {
	if max <= 0 {
		return fmt.Sprintf("Must be non empty string at least %d characters. Current length is %d.", min, RuneLength(v))
	}
	return fmt.Sprintf("Must be non empty string at least %d characters, at most %d characters. Current length is %d.",
		min, max, RuneLength(v))
}

// ToInt interprets v as an integer. Empty strings, booleans and values outside
// the INTEGER column range are rejected.
func ToInt(v any) (int, bool) {
	switch value := v.(type) {
	case int:
		return fitsInt32(int64(value))
	case int32:
		return int(value), true
	case int64:
		return fitsInt32(value)
	case float64:
		return integral(value)
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return fitsInt32(n)
		}
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fitsInt32(n)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return integral(f)
	default:
		return 0, false
	}
}

// IsInt reports whether v can be interpreted as an integer.
func IsInt(v any) bool {
	_, ok := ToInt(v)
	return ok
}

// IsPositiveInt reports whether v is an integer greater than zero.
func IsPositiveInt(v any) bool {
	n, ok := ToInt(v)
	return ok && n > 0
}

func fitsInt32(n int64) (int, bool) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

func integral(f float64) (int, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// TooLong reports whether v is a string of more than max characters.
func TooLong(v any, max int) bool {
	return IsString(v) && RuneLength(v) > max
}

// MaxLengthMessage describes a string longer than max characters.
func MaxLengthMessage(label string, v any, max int) string {
	return fmt.Sprintf("%s must be at most %d characters. Current length is %d.", label, max, RuneLength(v))
}

// ToBool accepts native booleans and the literal strings "true" and "false".
func ToBool(v any) (bool, bool) {
	switch value := v.(type) {
	case bool:
		return value, true
	case string:
		switch value {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// IsBool reports whether v is a boolean or one of its accepted string forms.
func IsBool(v any) bool {
	_, ok := ToBool(v)
	return ok
}

// ToDate parses a date string (YYYY-MM-DD or RFC 3339) or passes a time.Time through.
func ToDate(v any) (time.Time, bool) {
	switch value := v.(type) {
	case time.Time:
		return value, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, value); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// IsDate reports whether v is a parseable date.
func IsDate(v any) bool {
	_, ok := ToDate(v)
	return ok
}

// IsOneOf reports whether v is a string contained in allowed.
func IsOneOf(v any, allowed ...string) bool {
	s, ok := v.(string)
	return ok && slices.Contains(allowed, s)
}

// IsURL reports whether v is an absolute http(s) URL.
func IsURL(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	parsed, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsEmail reports whether v is an RFC 5322 address without a display name.
func IsEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	address, err := mail.ParseAddress(s)
	return err == nil && address.Address == s
}
