package testutil

import "errors"

// ErrSimulated is returned by test doubles to drive failure paths.
var ErrSimulated = errors.New("simulated error for testing")
