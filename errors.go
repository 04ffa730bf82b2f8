package hrcsim

import (
	"fmt"
)

const (
	reasonNodeNotFound       = "node not found"
	reasonInvalidActionIndex = "invalid action index"
	reasonBadReference       = "invalid node reference"
)

// AddressingError is returned when a reference cannot be resolved to a
// node file, or when an action index is out of range.
type AddressingError struct {
	Reason string
	// Ref is the reference as the caller gave it.
	Ref string
}

func (e *AddressingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Ref)
}

func newNotFound(ref Ref) *AddressingError {
	return &AddressingError{Reason: reasonNodeNotFound, Ref: ref.String()}
}

// CorruptNodeError is returned when a node file is not valid JSON or
// lacks a required field. It is fatal to that node only.
type CorruptNodeError struct {
	Path string
	// Field is the path of the missing or mistyped field, e.g.
	// "hands" or "actions[1].type". Empty for undecodable files.
	Field string
	Err   error
}

func (e *CorruptNodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("corrupt node %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("corrupt node %s: field %q: %v", e.Path, e.Field, e.Err)
}

func (e *CorruptNodeError) Unwrap() error {
	return e.Err
}

// DiscoveryWarning records a directory entry that was excluded from a
// Hand's node set when it was opened.
type DiscoveryWarning struct {
	Path   string
	Reason string
	Err    error
}

func (w DiscoveryWarning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Path, w.Reason, w.Err)
	}

	return fmt.Sprintf("%s: %s", w.Path, w.Reason)
}
