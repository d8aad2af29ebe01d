package cypher

import "fmt"

// ParseError is the typed error surfaced by Parse. Offset is the byte
// offset into the input where participle's lexer or grammar gave up;
// it is -1 when the underlying error carried no position.
type ParseError struct {
	Offset  int
	Message string
}

func (e ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("syntax error: %s", e.Message)
	}
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}
