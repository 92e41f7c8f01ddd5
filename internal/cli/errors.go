package cli

import "errors"

// ErrUsage marks local argument errors (bad flags, malformed JSON). These are
// the only failures besides spec-fetch ones that exit non-zero; remote-side
// failures are printed as part of the normal result and exit zero.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
