package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Checker performs HEAD requests against all tracked candidate sources
// and records their availability in the source database.
type Checker struct {
	sources *SourceDB
	logger  *slog.Logger
	client  *http.Client
}

// NewChecker creates a Checker over an opened source database.
func NewChecker(sources *SourceDB, logger *slog.Logger) *Checker {
	return &Checker{
		sources: sources,
		logger:  logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// CheckAll performs a HEAD request on every source URL and persists the
// result. Static sources (empty URL) are skipped.
func (c *Checker) CheckAll(ctx context.Context) error {
	sources, err := c.sources.ListSources()
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	var ok, failed int
	for _, src := range sources {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if src.SourceURL == "" {
			continue
		}

		status, checkErr := c.checkOne(ctx, src.SourceURL)
		errMsg := ""
		if checkErr != nil {
			errMsg = checkErr.Error()
		}

		if err := c.sources.UpdateCheck(src.AdapterID, status, errMsg); err != nil {
			c.logger.Error("record availability check", "adapter", src.AdapterID, "error", err)
		}

		if status >= 200 && status < 400 {
			ok++
		} else {
			failed++
			c.logger.Warn("source unavailable",
				"adapter", src.AdapterID,
				"url", src.SourceURL,
				"status", status,
				"error", errMsg,
			)
		}
	}

	c.logger.Info("source check complete", "total", ok+failed, "ok", ok, "failed", failed)
	return nil
}

// checkOne performs a single HEAD request and returns the HTTP status
// code. On network error, status is 0.
func (c *Checker) checkOne(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
