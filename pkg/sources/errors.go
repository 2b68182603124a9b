package sources

import (
	"errors"
	"fmt"
)

// ErrRequestInFlight is returned when a request for the same resource is
// already outstanding. The caller should wait for it instead of retrying.
var ErrRequestInFlight = errors.New("request already in flight")

// Kind classifies a FetchError.
type Kind int

const (
	// KindTransport is a failure below HTTP: DNS, connection, TLS, body read.
	KindTransport Kind = iota + 1
	// KindNotHTTP is a URL that cannot be fetched over HTTP.
	KindNotHTTP
	// KindStatus is a response other than 200 OK.
	KindStatus
	// KindMalformed is a body that could not be decoded.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNotHTTP:
		return "not http"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// FetchError describes a failed catalogue or image request. Fetch errors
// are reported to the user and never retried automatically.
type FetchError struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	case KindNotHTTP:
		return fmt.Sprintf("fetch %s: not an http url", e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a FetchError of kind k.
func IsKind(err error, k Kind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == k
}
