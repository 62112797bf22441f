// Package crawler fetches raw provider payloads and drives the
// parse-and-normalize flow for configured sources.
package crawler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"gridfeed/internal/config"
	"gridfeed/pkg/utils"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Scraper fetches provider payloads with config-driven retry logic.
type Scraper struct {
	client       *http.Client
	retryPolicy  *config.RetryPolicy
	bufferSizeKb int
}

// NewScraper creates a new scraper instance with default config.
func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryPolicy: &config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		},
		bufferSizeKb: 4096,
	}
}

// NewScraperWithConfig creates a new scraper with a custom retry policy.
func NewScraperWithConfig(retryPolicy *config.RetryPolicy, bufferSizeKb int) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy:  retryPolicy,
		bufferSizeKb: bufferSizeKb,
	}
}

// ScrapeWithMetrics returns (content, statusCode, duration, error).
func (s *Scraper) ScrapeWithMetrics(url string) (string, int, time.Duration, error) {
	var lastErr error

	var lastStatusCode int

	totalDuration := time.Duration(0)

	for attempt := 1; attempt <= s.retryPolicy.MaxAttempts; attempt++ {
		startTime := time.Now()

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)

			continue
		}

		req.Header = utils.BuildHeaders(nil)

		resp, err := s.client.Do(req)
		duration := time.Since(startTime)
		totalDuration += duration

		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, s.retryPolicy.MaxAttempts, err)

			s.backoff(attempt)

			continue
		}

		lastStatusCode = resp.StatusCode

		if resp.StatusCode != http.StatusOK {
			closeBody(resp)

			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if isRetryableStatus(resp.StatusCode) {
				s.backoff(attempt)
			}

			continue
		}

		// bufferSizeKb caps the payload we are willing to hold in memory
		limit := int64(s.bufferSizeKb) * 1024
		body, err := io.ReadAll(io.LimitReader(resp.Body, limit))

		closeBody(resp)

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)

			continue
		}

		return string(body), resp.StatusCode, totalDuration, nil
	}

	return "", lastStatusCode, totalDuration, lastErr
}

// Scrape fetches and returns content from the given URL.
func (s *Scraper) Scrape(url string) (string, error) {
	content, _, _, err := s.ScrapeWithMetrics(url)

	return content, err
}

// ReadLocalFile reads content from a local file path, for offline sources.
func (s *Scraper) ReadLocalFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return string(content), nil
}

func (s *Scraper) backoff(attempt int) {
	if attempt >= s.retryPolicy.MaxAttempts {
		return
	}

	if delay := s.retryPolicy.GetRetryDelay(attempt); delay > 0 {
		time.Sleep(delay)
	}
}

func closeBody(resp *http.Response) {
	_ = resp.Body.Close()
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}
