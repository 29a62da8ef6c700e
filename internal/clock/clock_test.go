package clock

import (
	"testing"
	"time"
)

func TestToEastern(t *testing.T) {
	utc := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	east := ToEastern(utc)
	if !east.Equal(utc) {
		t.Error("localization must not shift the instant")
	}
	if east.Hour() == utc.Hour() && east.Location() != time.UTC {
		t.Errorf("winter Eastern time should be offset from UTC, got %v", east)
	}
}

func TestPairISO(t *testing.T) {
	instant := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	utcISO, usISO := PairISO(instant)
	if utcISO != "2026-01-10T12:00:00Z" {
		t.Errorf("unexpected UTC rendering: %s", utcISO)
	}
	parsed, err := time.Parse(time.RFC3339, usISO)
	if err != nil {
		t.Fatalf("US rendering should be RFC3339: %v", err)
	}
	if !parsed.Equal(instant) {
		t.Error("both renderings should name the same instant")
	}
}

func TestNowUTC(t *testing.T) {
	if NowUTC().Location() != time.UTC {
		t.Error("NowUTC should be in UTC")
	}
}
