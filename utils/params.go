package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDList parses a comma-separated list of positive integer ids,
// as used by the ?ids= query parameter.
func ParseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("ids parameter is empty")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		if id <= 0 {
			return nil, fmt.Errorf("id must be greater than 0, got %d", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseIntQuery parses an optional integer query parameter, returning
// fallback when the parameter is absent or empty.
func ParseIntQuery(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return value, nil
}

// IsValidHex reports whether a string is a well-formed #RRGGBB color
// (leading # optional, case-insensitive). The color converter itself is
// lenient; validation happens here at the API boundary.
func IsValidHex(raw string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'f'
		isUpper := c >= 'A' && c <= 'F'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}
