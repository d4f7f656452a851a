package service

import "errors"

// Business-rule failures returned as typed values so handlers can map them to
// user-facing responses without string matching.
var (
	ErrBadCredentials       = errors.New("incorrect username or password")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrUnknownSubject       = errors.New("account no longer exists")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired attendance code")
	ErrAlreadyMarked        = errors.New("attendance already marked for this session")
	ErrCodeSpaceExhausted   = errors.New("could not allocate a unique attendance code")
	ErrReceiverNotFound     = errors.New("receiver not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUnknownParticipant   = errors.New("unknown mission participant")
)
