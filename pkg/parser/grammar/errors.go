package grammar

import "fmt"

// SyntaxError reports source that a backend cannot parse. Offset is a byte
// offset into the file.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at byte %d: %s", e.Offset, e.Message)
}

// Errorf builds a SyntaxError.
func Errorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}
