package statement

import "fmt"

// FormatError marks user-correctable input-format problems: a missing or
// mismatched header row, an unparseable amount or date. The offending
// row/value is named in the message. There is no retry; the user fixes
// the source file and re-uploads.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}
