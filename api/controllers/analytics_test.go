package controllers

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolveDateRange_ExplicitBounds(t *testing.T) {
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	r := httptest.NewRequest("GET", "/analytics/fleet-summary?start_date=2025-08-01T00:00:00Z&end_date=2025-08-15T00:00:00Z", nil)

	start, end := resolveDateRange(r, now)
	if !start.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", start)
	}
	if !end.Equal(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %s", end)
	}
}

func TestResolveDateRange_FallsBackToDefaultWindow(t *testing.T) {
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	wantStart := now.AddDate(0, 0, -30)

	cases := map[string]string{
		"missing both":    "/analytics/fleet-summary",
		"missing end":     "/analytics/fleet-summary?start_date=2025-08-01T00:00:00Z",
		"malformed start": "/analytics/fleet-summary?start_date=yesterday&end_date=2025-08-15T00:00:00Z",
		"malformed end":   "/analytics/fleet-summary?start_date=2025-08-01T00:00:00Z&end_date=2025-08-15",
	}

	for name, target := range cases {
		r := httptest.NewRequest("GET", target, nil)
		start, end := resolveDateRange(r, now)
		if !start.Equal(wantStart) || !end.Equal(now) {
			t.Fatalf("%s: expected fallback window, got [%s, %s]", name, start, end)
		}
	}
}
