package errors

import "fmt"

// Lookup failures
var (
	ErrUserNotFound      = fmt.Errorf("user does not exist")
	ErrRoomNotFound      = fmt.Errorf("chat room does not exist")
	ErrOtherUserNotFound = fmt.Errorf("the user you are trying to high five does not exist")
	ErrEventNotFound     = fmt.Errorf("event does not exist")
)

// Membership failures
var (
	ErrAlreadyMember = fmt.Errorf("user already exists in chat room")
	ErrNotMember     = fmt.Errorf("user is not in the chat room")
	ErrSelfFive      = fmt.Errorf("you can't self five")
)

// Ingestion and query failures
var (
	ErrUnrecognizedEvent  = fmt.Errorf("unrecognizable event")
	ErrInvalidGranularity = fmt.Errorf("granularity value must be one of: [1, 2, 3, 4, 6, 8, 12, 24]")
	ErrInvalidFromDate    = fmt.Errorf("from date is not valid")
	ErrInvalidToDate      = fmt.Errorf("to date is not valid")
	ErrInvalidDateRange   = fmt.Errorf("from date cannot be greater than to date")
	ErrInvalidPayload     = fmt.Errorf("invalid payload")
	ErrUnknownBackend     = fmt.Errorf("unknown store backend")
)
