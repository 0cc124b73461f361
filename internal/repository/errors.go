package repository

import "errors"

// ErrStoreUnavailable wraps every failure to durably create a record,
// whether the backend is unreachable or the write was rejected.
var ErrStoreUnavailable = errors.New("store unavailable")
