// Package apperrors defines the error taxonomy shared by every layer. Handlers
// map these types to HTTP statuses; internals never leak past the handler.
package apperrors

import "fmt"

// ValidationError marks a user-correctable request problem (400).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError marks a missing row or file (404).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// DataAccessError wraps a database failure that survived the retry policy (500).
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed in %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// FilesystemError wraps an asset-store failure, carrying the failed path (500).
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// CodecError marks image bytes that could not be decoded or re-encoded.
// Reported per slot, never silently dropped.
type CodecError struct {
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("image codec: %v", e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }
