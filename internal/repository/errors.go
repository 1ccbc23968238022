package repository

import "errors"

// ErrNotFound indicates the requested row does not exist. Wrapped with the
// entity name by each repository.
var ErrNotFound = errors.New("not found")

// ErrDuplicate indicates a uniqueness violation, e.g. a category name that
// is already taken.
var ErrDuplicate = errors.New("already exists")
