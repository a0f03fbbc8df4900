// Package strings provides string-slice helpers for parsing delimited
// configuration values.
package strings

import "strings"

// DedupeAndTrim trims whitespace from each element and removes empties and
// duplicates, preserving first-seen order. Used to normalize comma-separated
// lists such as Kafka broker addresses.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	return result
}
