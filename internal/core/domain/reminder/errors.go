package reminder

import "errors"

var (
	ErrReminderDoesNotExist = errors.New("reminder does not exist")
	ErrReminderPermission   = errors.New("reminder does not belong to user")
	ErrReminderNotActive    = errors.New("reminder is not active")
	ErrReminderTitleEmpty   = errors.New("reminder title is empty")
)

var (
	ErrInvalidTime = errors.New("invalid time")
	ErrTimeInPast  = errors.New("time is in the past")
	ErrMissingTime = errors.New("neither due time nor cadence is given")
)
