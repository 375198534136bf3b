package utils

// TruncateLeft shortens a string to max characters by dropping its
// head, keeping the tail visible. Paths read better truncated this way
// since the filename sits at the end.
func TruncateLeft(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
