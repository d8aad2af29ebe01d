package store

import "fmt"

// ErrorKind names a class of store-level failure, mirroring the teacher's
// GraphError.Kind taxonomy.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NotFound"
	KindMissingNode  ErrorKind = "MissingNode"
	KindDuplicateID  ErrorKind = "DuplicateId"
	KindInvalidBatch ErrorKind = "InvalidBatch"
)

// Error is the typed error surfaced by every Store mutator and accessor.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("store error (%s): %s", e.Kind, e.Message)
}

func errNodeNotFound(id NodeID) error {
	return Error{Kind: KindNotFound, Message: fmt.Sprintf("node %d does not exist", id)}
}

func errEdgeNotFound(id EdgeID) error {
	return Error{Kind: KindNotFound, Message: fmt.Sprintf("edge %d does not exist", id)}
}

func errMissingNode(id NodeID) error {
	return Error{Kind: KindMissingNode, Message: fmt.Sprintf("node %d does not exist", id)}
}

func errDuplicateNodeID(id NodeID) error {
	return Error{Kind: KindDuplicateID, Message: fmt.Sprintf("node id %d already in use", id)}
}

func errDuplicateEdgeID(id EdgeID) error {
	return Error{Kind: KindDuplicateID, Message: fmt.Sprintf("edge id %d already in use", id)}
}
