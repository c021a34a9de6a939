package probe

import "errors"

// Probe errors.
// These wrap the underlying cause in model.Outcome.Err so callers can tell
// the two failure classes apart with errors.Is.
var (
	// ErrUnreachable is wrapped around transport errors: refused or timed out
	// connections, TLS handshake failures and interrupted response bodies.
	ErrUnreachable = errors.New("host unreachable")

	// ErrParseFailure is wrapped around extraction errors for pages that were
	// received but did not contain the device table.
	ErrParseFailure = errors.New("unexpected page format")

	// ErrInvalidProxy is returned by NewHTTPClient for a malformed or
	// unsupported proxy URL.
	ErrInvalidProxy = errors.New("invalid proxy URL: expected socks5://[user:pass@]host:port")
)
