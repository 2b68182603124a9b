package sources

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

// Image is a downloaded image whose header has been validated.
type Image struct {
	URL    string
	Data   []byte
	Format string
	Width  int
	Height int
}

// Decode decodes the full image.
func (i *Image) Decode() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(i.Data))
	if err != nil {
		return nil, &FetchError{Kind: KindMalformed, URL: i.URL, Err: err}
	}
	return img, nil
}

// ImageFetcher downloads images with at most one request in flight per URL.
// A second request for a URL that is still downloading is rejected, not
// queued or merged.
type ImageFetcher struct {
	client *http.Client
	log    *zap.SugaredLogger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewImageFetcher(client *http.Client, log *zap.SugaredLogger) *ImageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ImageFetcher{
		client:   client,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

func (f *ImageFetcher) acquire(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.inflight[url]; busy {
		return false
	}
	f.inflight[url] = struct{}{}
	return true
}

func (f *ImageFetcher) release(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inflight, url)
}

// InFlight reports whether url is currently being downloaded.
func (f *ImageFetcher) InFlight(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, busy := f.inflight[url]
	return busy
}

func (f *ImageFetcher) Image(ctx context.Context, url string) (*Image, error) {
	if !f.acquire(url) {
		return nil, fmt.Errorf("%w: %s", ErrRequestInFlight, url)
	}
	defer f.release(url)

	body, err := get(ctx, f.client, url, nil)
	if err != nil {
		f.log.Debugw("image fetch failed", "url", url, "error", err)
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Kind: KindMalformed, URL: url, Err: err}
	}

	return &Image{
		URL:    url,
		Data:   body,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
