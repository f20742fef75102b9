package utils

import (
	"strconv"
	"strings"
)

// FormatGil formats an integer gil amount as a string like "12,500 gil",
// with comma as thousands separator.
func FormatGil(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	// Pre-allocate: digits + separators + sign + suffix
	b.Grow(len(s) + len(s)/3 + 5)
	if neg {
		b.WriteString("-")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	b.WriteString(" gil")
	return b.String()
}
