package backup

import "errors"

// Sentinel errors for the denial conditions callers map to HTTP responses.
// Everything else (adapter I/O, crypto failures) propagates wrapped.
var (
	// ErrPathOutsideStorage means a candidate path resolved outside the
	// storage target's base path.
	ErrPathOutsideStorage = errors.New("path is outside the storage base path")

	// ErrPathOutsideBrowseRoot means a candidate path resolved outside the
	// configured browse root.
	ErrPathOutsideBrowseRoot = errors.New("path is outside the browse root")

	// ErrTokenInvalidOrExpired covers every preview-credential denial:
	// unknown, already consumed, bound to another asset, or past deadline.
	// A single error keeps callers from distinguishing the cases.
	ErrTokenInvalidOrExpired = errors.New("token is invalid or expired")

	// ErrStorageNotFound / ErrAssetNotFound / ErrJobNotFound surface as 404s.
	ErrStorageNotFound = errors.New("storage target not found")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrJobNotFound     = errors.New("job not found")
)

// NotImplementedError is returned by storage backends that are configured but
// not integrated. It names the specific missing operation so callers can
// distinguish "not integrated" from a transient failure.
type NotImplementedError struct {
	Backend   string
	Operation string
}

func (e *NotImplementedError) Error() string {
	return e.Backend + " backend does not implement " + e.Operation + " yet"
}

// IsNotImplemented reports whether err is a NotImplementedError.
func IsNotImplemented(err error) bool {
	var nie *NotImplementedError
	return errors.As(err, &nie)
}
