package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const fetchUserAgent = "Mozilla/5.0 (Research Bot - European Savings Bank Map)"

// fetchHTML downloads a page with exponential-backoff retries. Candidate
// sources are retried because nothing caches a failure on this path;
// geocode and scan lookups must not go through here.
func fetchHTML(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("User-Agent", fetchUserAgent)

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("HTTP %d for %s", resp.StatusCode, url))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}

// newFetchClient returns the HTTP client used for source downloads.
func newFetchClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
