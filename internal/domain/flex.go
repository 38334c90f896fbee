package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Count is an integer that the article API sends either as a number or as a
// numeric string. Unparseable values decode to zero, values beyond the int
// range are clamped.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Count(leadingInt(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	switch {
	case f >= math.MaxInt:
		*c = Count(math.MaxInt)
	case f <= math.MinInt:
		*c = Count(math.MinInt)
	default:
		*c = Count(math.Trunc(f))
	}
	return nil
}

// leadingInt parses the optional sign and digits at the start of s.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || (end == 0 && (ch == '-' || ch == '+')) {
			end++
			continue
		}
		break
	}

	// Atoi saturates out of range values and reports ErrRange
	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}

// FlexString accepts any JSON scalar and keeps its textual form.
// The page config mixes booleans, numbers and strings for the same fields.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Bool reports whether the value reads as true.
func (f FlexString) Bool() bool {
	return strings.EqualFold(strings.TrimSpace(string(f)), "true")
}
