package models

import "errors"

// Primary-store errors surfaced to callers. Mirror failures are never
// represented here: they are absorbed and logged inside internal/mirror.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrValidation      = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
)
