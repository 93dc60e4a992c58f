package download

import "errors"

var (
	// ErrMissingCACertFile occurs when no CA certificate file was
	// configured, or it could not be read or parsed.
	ErrMissingCACertFile = errors.New("download: missing or invalid CA certificate file")

	// ErrDownloadFailed occurs when the HTTPS request itself fails, or
	// the server responds with anything other than 200 OK.
	ErrDownloadFailed = errors.New("download: could not fetch network layout")
)
