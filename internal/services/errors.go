package services

import "errors"

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrRejected matches every business-rule rejection via errors.Is.
var ErrRejected = errors.New("rejected")

// RejectedError is a business-rule rejection carrying a user-facing reason.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string { return e.Reason }

// Is makes every RejectedError match ErrRejected.
func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

var (
	// ErrDuplicateEmail rejects a customer whose email belongs to another customer.
	ErrDuplicateEmail = &RejectedError{Reason: "a customer with this email already exists"}
	// ErrUnknownCategory rejects a product pointing at a missing category.
	ErrUnknownCategory = &RejectedError{Reason: "the referenced category does not exist"}
	// ErrCategoryInUse rejects deleting a category that still has products.
	ErrCategoryInUse = &RejectedError{Reason: "the category still has products"}
)
