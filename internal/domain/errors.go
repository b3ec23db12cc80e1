package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// MediaRejectedError reports a user upload that could not be normalized.
// It aborts that one item only; the rest of the batch continues.
type MediaRejectedError struct {
	Filename string
	Reason   string
}

func (e MediaRejectedError) Error() string {
	return fmt.Sprintf("media %q rejected: %s", e.Filename, e.Reason)
}

// Is enables errors.Is matching on MediaRejectedError.
func (e MediaRejectedError) Is(target error) bool {
	_, ok := target.(MediaRejectedError)
	if ok {
		return true
	}
	_, ok = target.(*MediaRejectedError)
	return ok
}

// ErrMediaRejected is the sentinel error for rejected uploads.
var ErrMediaRejected = MediaRejectedError{}

// SectionBusyError reports that a section already has an upload batch in
// flight and accepts no new uploads until it resolves.
type SectionBusyError struct {
	SectionID string
}

func (e SectionBusyError) Error() string {
	return fmt.Sprintf("section %s has an upload in flight", e.SectionID)
}
