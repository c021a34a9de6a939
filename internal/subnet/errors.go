package subnet

import "errors"

// Subnet parsing errors.
// Every error returned by Parse wraps ErrInvalidSubnet so callers can treat
// all of them as a usage error with a single errors.Is check.
var (
	// ErrInvalidSubnet is returned when the input is not a valid CIDR prefix.
	ErrInvalidSubnet = errors.New("invalid subnet")

	// ErrNotIPv4 is returned for IPv6 prefixes.
	ErrNotIPv4 = errors.New("subnet is not IPv4")

	// ErrHostBitsSet is returned when the address has bits set outside the
	// prefix, e.g. 192.168.0.1/24.
	ErrHostBitsSet = errors.New("subnet has host bits set")
)
