package errors

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrNodalPointNotFound = errors.New("nodal point not found")
	ErrDuplicateName      = errors.New("nodal point name already exists")
	ErrInvalidID          = errors.New("invalid id")
)
