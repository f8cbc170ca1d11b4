package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller's role is not authorized for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that a state precondition was violated (wrong current
// status, ordering invariant broken, concurrent update lost).
var ErrConflict = errors.New("state conflict")

// ErrInternal indicates a storage or gateway failure that the caller cannot fix.
var ErrInternal = errors.New("internal error")
