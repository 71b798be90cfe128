// Package statement holds the pure bank-statement file transforms: the
// null-byte sanitizer and the per-bank CSV reshapers that rewrite raw
// exports into the canonical 6-column ledger import format. No
// persistence; callers decide where transformed bytes go.
package statement

import "bytes"

// StripNullBytes returns content with every NUL byte removed. FNB exports
// are sometimes UTF-16 tainted and arrive with embedded NULs that break
// CSV parsing downstream. Idempotent: clean input comes back unchanged.
func StripNullBytes(content []byte) []byte {
	if !ContainsNullBytes(content) {
		return content
	}
	out := make([]byte, 0, len(content))
	for _, b := range content {
		if b != 0 {
			out = append(out, b)
		}
	}
	return out
}

// ContainsNullBytes reports whether content has any embedded NUL byte.
// Preview rendering refuses files for which this is true.
func ContainsNullBytes(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}
