package runtime

import "fmt"

// ErrorKind names a class of evaluation failure.
type ErrorKind string

const (
	KindUnboundVariable ErrorKind = "UnboundVariable"
	KindUnknownFunction ErrorKind = "UnknownFunction"
	KindArgumentError   ErrorKind = "ArgumentError"
	KindBadRegex        ErrorKind = "BadRegex"
	KindUnexpectedNode  ErrorKind = "UnexpectedNode"
)

// Error is the typed error surfaced by Evaluate.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("evaluation error (%s): %s", e.Kind, e.Message)
}
