package utils

import "net/http"

// BuildHeaders creates HTTP headers with defaults for provider fetches.
func BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Add("User-Agent", "gridfeed-worker/1.0")
	headers.Add("Accept", "application/json, text/csv, text/html")

	for key, value := range customHeaders {
		headers.Add(key, value)
	}

	return headers
}
