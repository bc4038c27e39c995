package errs

import "net/http"

// ErrCode represents an error code in the system.
type ErrCode int

// The set of error codes in the system. InternalOnlyLog behaves like
// Internal but signals the errors middleware to log the raw message and
// respond with a generic one.
const (
	OK ErrCode = iota
	InvalidArgument
	NotFound
	Aborted
	PermissionDenied
	Unauthenticated
	FailedPrecondition
	Internal
	InternalOnlyLog
)

var codeNames = map[ErrCode]string{
	OK:                 "ok",
	InvalidArgument:    "invalid_argument",
	NotFound:           "not_found",
	Aborted:            "aborted",
	PermissionDenied:   "permission_denied",
	Unauthenticated:    "unauthenticated",
	FailedPrecondition: "failed_precondition",
	Internal:           "internal",
	InternalOnlyLog:    "internal",
}

var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	InvalidArgument:    http.StatusBadRequest,
	NotFound:           http.StatusNotFound,
	Aborted:            http.StatusConflict,
	PermissionDenied:   http.StatusForbidden,
	Unauthenticated:    http.StatusUnauthorized,
	FailedPrecondition: http.StatusPreconditionFailed,
	Internal:           http.StatusInternalServerError,
	InternalOnlyLog:    http.StatusInternalServerError,
}
