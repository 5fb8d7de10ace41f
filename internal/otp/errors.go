package otp

import "errors"

var (
	// ErrNoPendingCode means nothing was issued for the phone, or the code
	// already expired or was consumed.
	ErrNoPendingCode = errors.New("no pending code")
	// ErrCodeMismatch means a pending code exists but the presented value is
	// wrong. The pending code stays valid until its TTL elapses.
	ErrCodeMismatch = errors.New("code mismatch")
)
