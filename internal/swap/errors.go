package swap

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when Execute is invoked without a selected
// quote or a connected wallet. No submission call is made.
var ErrInvalidState = errors.New("swap: missing quote or wallet")

// ErrBusy is returned when an execution is already in flight for the session.
var ErrBusy = errors.New("swap: execution already in flight")

// UserRejectedError indicates the wallet declined to sign the transaction.
type UserRejectedError struct {
	Err error
}

func (e *UserRejectedError) Error() string {
	return fmt.Sprintf("swap: user rejected signing: %v", e.Err)
}

func (e *UserRejectedError) Unwrap() error { return e.Err }

// SubmissionError indicates the signed transaction could not be built or
// broadcast.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("swap: submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// IsUserRejected reports whether err is a wallet signing rejection.
func IsUserRejected(err error) bool {
	var target *UserRejectedError
	return errors.As(err, &target)
}

// IsSubmissionFailed reports whether err is a build/broadcast failure.
func IsSubmissionFailed(err error) bool {
	var target *SubmissionError
	return errors.As(err, &target)
}
