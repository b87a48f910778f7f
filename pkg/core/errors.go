package core

import "errors"

// ErrInvalidArgument reports an invalid construction parameter or an
// out-of-range access. Callers wrap it with context and test it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
