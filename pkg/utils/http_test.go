package utils

import "testing"

func TestBuildHeaders_Defaults(t *testing.T) {
	headers := BuildHeaders(nil)

	if got := headers.Get("User-Agent"); got != "gridfeed-worker/1.0" {
		t.Errorf("User-Agent = %q", got)
	}

	if got := headers.Get("Accept"); got == "" {
		t.Error("Accept header missing")
	}
}

func TestBuildHeaders_Custom(t *testing.T) {
	headers := BuildHeaders(map[string]string{"X-Request-Id": "abc123"})

	if got := headers.Get("X-Request-Id"); got != "abc123" {
		t.Errorf("X-Request-Id = %q", got)
	}

	if got := headers.Get("User-Agent"); got != "gridfeed-worker/1.0" {
		t.Errorf("custom headers must not drop defaults, User-Agent = %q", got)
	}
}
