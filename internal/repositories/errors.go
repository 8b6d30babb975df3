package repositories

import "errors"

// ErrNotFound is wrapped by every lookup that misses, so callers can branch
// with errors.Is without depending on gorm.
var ErrNotFound = errors.New("record not found")
