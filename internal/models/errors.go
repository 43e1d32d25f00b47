package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyAssigned   = errors.New("incident already has an active assignment")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrContention        = errors.New("concurrent update in progress, retry with fresh data")
	ErrInvalidIncident   = errors.New("invalid incident")
	ErrInvalidUnitCount  = errors.New("invalid unit count")

	// ErrNotAssignee - переход запрошен не тем подразделением, которое держит назначение
	ErrNotAssignee = fmt.Errorf("%w: actor does not hold the assignment", ErrInvalidTransition)
)
