package pfam

import "github.com/AlbertoBoldrini/pfam-go/internal/errors"

// IsTransportError reports whether err comes from the HTTP layer: a failed
// request, an unreadable body, or a non-2xx status.
func IsTransportError(err error) bool {
	return errors.IsCategory(err, errors.CategoryNetwork) ||
		errors.IsCategory(err, errors.CategoryHTTPStatus) ||
		errors.IsCategory(err, errors.CategoryTimeout)
}

// IsRemoteError reports whether err carries an error message reported by the
// Pfam server inside a well-formed response document.
func IsRemoteError(err error) bool {
	return errors.IsCategory(err, errors.CategoryRemote)
}

// IsParseError reports whether err comes from interpreting a response body
// that the server delivered successfully.
func IsParseError(err error) bool {
	return errors.IsCategory(err, errors.CategoryXMLParsing)
}
