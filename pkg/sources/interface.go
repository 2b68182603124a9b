package sources

import (
	"context"

	"github.com/kerbaras/guya/pkg/data"
)

// BookSource retrieves the whole catalogue. Every returned Book is complete
// and immutable.
type BookSource interface {
	Books(ctx context.Context) ([]*data.Book, error)
}

// ImageSource downloads page and cover images. At most one request per URL
// is in flight; a concurrent request for the same URL fails with
// ErrRequestInFlight.
type ImageSource interface {
	Image(ctx context.Context, url string) (*Image, error)
}
