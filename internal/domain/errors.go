package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (slug, email, order number).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInUse indicates the entity is still referenced and cannot be deleted.
	ErrInUse = errors.New("in use")
)
