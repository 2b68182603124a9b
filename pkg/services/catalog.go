package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/sources"
)

var ErrBookNotFound = errors.New("book not found")

// Catalog holds the sorted list of books for the lifetime of the process.
// Only one catalogue request runs at a time; a concurrent call fails with
// sources.ErrRequestInFlight instead of waiting for it.
type Catalog struct {
	source  sources.BookSource
	weights sources.Weights
	log     *zap.SugaredLogger

	mu         sync.Mutex
	requesting bool
	books      []*data.Book
}

func NewCatalog(source sources.BookSource, weights sources.Weights, log *zap.SugaredLogger) *Catalog {
	if weights == nil {
		weights = sources.DefaultWeights()
	}
	return &Catalog{source: source, weights: weights, log: log}
}

// Books returns the catalogue ordered by weight. With useCache set a
// previously fetched catalogue is returned without a request. Failed
// requests are not cached.
func (c *Catalog) Books(ctx context.Context, useCache bool) ([]*data.Book, error) {
	c.mu.Lock()
	if c.requesting {
		c.mu.Unlock()
		return nil, fmt.Errorf("catalogue: %w", sources.ErrRequestInFlight)
	}
	if useCache && c.books != nil {
		books := c.books
		c.mu.Unlock()
		return append([]*data.Book(nil), books...), nil
	}
	c.requesting = true
	c.mu.Unlock()

	books, err := c.source.Books(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.requesting = false
	if err != nil {
		c.log.Warnw("catalogue request failed", "error", err)
		return nil, err
	}

	sorted := append([]*data.Book(nil), books...)
	c.weights.Sort(sorted)
	c.books = sorted
	c.log.Debugw("catalogue updated", "books", len(sorted))
	return append([]*data.Book(nil), sorted...), nil
}

// Book finds a book by identifier, fetching the catalogue if needed.
func (c *Catalog) Book(ctx context.Context, id string) (*data.Book, error) {
	books, err := c.Books(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
}

// Requesting reports whether a catalogue request is in flight.
func (c *Catalog) Requesting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requesting
}
