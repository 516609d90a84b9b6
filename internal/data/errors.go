package data

import "errors"

// ErrNotFound is returned when a requested page, block set, user or config
// row does not exist. Callers distinguish it from storage failures with
// errors.Is.
var ErrNotFound = errors.New("record not found")
