package stringutils

import "strings"

// NullIfBlank returns nil when the provided value is empty after trimming
// whitespace; otherwise it returns the original string.
func NullIfBlank(value string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

// NullIfEmpty returns nil for an empty byte slice so optional binary
// columns are written as NULL.
func NullIfEmpty(value []byte) interface{} {
	if len(value) == 0 {
		return nil
	}
	return value
}
