package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicatePhone indicates a phone number that is already registered.
	ErrDuplicatePhone = errors.New("phone number already exists")

	// ErrBillMismatch indicates a settlement that belongs to a different bill
	// than the one addressed by the request.
	ErrBillMismatch = errors.New("settlement does not belong to bill")
)
