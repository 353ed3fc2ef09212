package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrCycleAlreadyMaterialized is returned when an expense for a
	// (rule, cycle date) pair already exists. The materialization engine
	// treats it as a no-op, it is never surfaced to users.
	ErrCycleAlreadyMaterialized = errors.New("an expense for this rule and cycle date already exists")

	ErrAmountNegative        = errors.New("amounts must not be negative")
	ErrFrequencyInvalid      = errors.New("the frequency must be one of: monthly, yearly")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique per user")
	ErrAlreadyMember         = errors.New("the user is already a member of this group")
)
