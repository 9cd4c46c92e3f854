// internal/service/errors.go
package service

import "errors"

// Sentinel error untuk pelanggaran precondition; handler memetakannya ke
// status HTTP yang sesuai.
var (
	ErrNegativePoints          = errors.New("point amount must not be negative")
	ErrTaskNotFound            = errors.New("task not found in current challenge plan")
	ErrChallengeAlreadyStarted = errors.New("challenge already started")
	ErrChallengeNotStarted     = errors.New("challenge has not been started")
)
