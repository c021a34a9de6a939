package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when the probe timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidLayout is returned for an unknown page layout name.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrInvalidTableIndex is returned when the table index is negative.
	ErrInvalidTableIndex = errors.New("invalid table index: must be non-negative")

	// ErrInvalidPort is returned when the port is outside 1-65535.
	ErrInvalidPort = errors.New("invalid port: must be between 1 and 65535")

	// ErrInvalidFormat is returned for an unknown export format.
	ErrInvalidFormat = errors.New("invalid export format")

	// ErrInvalidMaxBodySize is returned when the body size limit is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidMaxHosts is returned when the host limit is negative.
	// Zero disables the limit.
	ErrInvalidMaxHosts = errors.New("invalid max hosts: must be non-negative")
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFile is returned when the configuration file cannot be decoded
	// or names a subnet that is not a valid IPv4 network.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)
