package appointment

import "errors"

// ===============================
// Error taxonomy
// ===============================

type ErrorKind string

const (
	MissingField         ErrorKind = "missing_field"
	InvalidDate          ErrorKind = "invalid_date"
	InvalidTime          ErrorKind = "invalid_time"
	InvalidDuration      ErrorKind = "invalid_duration"
	PastDate             ErrorKind = "past_date"
	OutsideBusinessHours ErrorKind = "outside_business_hours"
	SlotTaken            ErrorKind = "slot_taken"
	NotFound             ErrorKind = "not_found"
	Unauthorized         ErrorKind = "unauthorized"
	StorageFailure       ErrorKind = "storage_failure"
)

// IsValidation reports whether the kind is a caller mistake detected
// before touching storage.
func (k ErrorKind) IsValidation() bool {
	switch k {
	case MissingField, InvalidDate, InvalidTime, InvalidDuration, PastDate, OutsideBusinessHours:
		return true
	}
	return false
}

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
