package scanner

import "errors"

// ErrTooManyHosts is returned when a subnet exceeds the configured host limit.
var ErrTooManyHosts = errors.New("subnet has too many hosts")
