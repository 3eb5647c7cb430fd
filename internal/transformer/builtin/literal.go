package builtin

import "strings"

// Null is the SQL NULL literal.
const Null = "NULL"

// Quote wraps s in single quotes, doubling any quote inside it.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// String renders trimmed text as a quoted literal, or NULL when blank.
func String(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null
	}
	return Quote(s)
}

// Date renders the trimmed text verbatim as a quoted literal, or NULL when
// blank. The format is not validated; the database parses it.
func Date(raw string) string {
	return String(raw)
}
