package crawler

import (
	"fmt"
	"time"

	"gridfeed/internal/logger"
)

// AttemptResult records the result of one fetch attempt.
type AttemptResult struct {
	Timestamp  time.Time
	URL        string
	Error      string
	Attempt    int
	Duration   time.Duration
	StatusCode int
	Success    bool
}

// FetchLog records fetch attempts per URL for the crawl summary.
type FetchLog struct {
	attempts map[string][]AttemptResult
}

// NewFetchLog creates an empty fetch log.
func NewFetchLog() *FetchLog {
	return &FetchLog{
		attempts: make(map[string][]AttemptResult),
	}
}

// Record appends the result of a fetch attempt.
func (fl *FetchLog) Record(url string, success bool, err error, statusCode int, duration time.Duration) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	fl.attempts[url] = append(fl.attempts[url], AttemptResult{
		URL:        url,
		Attempt:    len(fl.attempts[url]) + 1,
		Success:    success,
		Error:      errMsg,
		Timestamp:  time.Now(),
		Duration:   duration,
		StatusCode: statusCode,
	})
}

// Attempts returns the recorded attempts for a URL.
func (fl *FetchLog) Attempts(url string) []AttemptResult {
	return fl.attempts[url]
}

// Stats returns statistics about fetch attempts.
func (fl *FetchLog) Stats() AttemptStats {
	stats := AttemptStats{
		URLAttempts: make(map[string]int),
	}

	for url, results := range fl.attempts {
		stats.TotalURLs++
		stats.URLAttempts[url] = len(results)
		stats.TotalAttempts += len(results)

		urlSuccess := false

		for _, result := range results {
			if result.Success {
				stats.SuccessfulAttempts++
				urlSuccess = true
			} else {
				stats.FailedAttempts++
			}
		}

		if urlSuccess {
			stats.SuccessfulURLs++
		} else {
			stats.FailedURLs++
		}
	}

	return stats
}

// LogSummary logs a per-URL summary of fetch attempts.
func (fl *FetchLog) LogSummary(l *logger.Logger) {
	for url, results := range fl.attempts {
		last := results[len(results)-1]

		status := "ok"
		if !last.Success {
			status = fmt.Sprintf("failed: %s", last.Error)
		}

		l.Info("fetch summary", "url", url, "attempts", len(results), "status", status)
	}

	l.Info(fmt.Sprintf("Overall: %s", fl.Stats()))
}

// AttemptStats contains statistics about fetch attempts.
type AttemptStats struct {
	URLAttempts        map[string]int
	TotalURLs          int
	SuccessfulURLs     int
	FailedURLs         int
	TotalAttempts      int
	SuccessfulAttempts int
	FailedAttempts     int
}

// String returns a string representation of attempt stats.
func (s AttemptStats) String() string {
	return fmt.Sprintf(
		"URLs: %d total, %d success, %d failed | Attempts: %d total, %d success, %d failed",
		s.TotalURLs,
		s.SuccessfulURLs,
		s.FailedURLs,
		s.TotalAttempts,
		s.SuccessfulAttempts,
		s.FailedAttempts,
	)
}
