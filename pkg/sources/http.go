package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// get performs a single GET and classifies every failure as a FetchError.
// There is no retry and no timeout beyond what client and ctx impose.
func get(ctx context.Context, client *http.Client, rawURL string, header http.Header) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{Kind: KindNotHTTP, URL: rawURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &FetchError{Kind: KindNotHTTP, URL: rawURL}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: rawURL, Err: err}
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Kind: KindStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: rawURL, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return body, nil
}
