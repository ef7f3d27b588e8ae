package timezone_test

import (
	"aulaboard/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	// Test Now() function
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	// Test GetLocation()
	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, timezone.GetLocation())

	combined := timezone.CombineDateTime(date, "09:30")
	if combined.Hour() != 9 || combined.Minute() != 30 {
		t.Errorf("CombineDateTime() = %v, want 09:30 on the same day", combined)
	}

	if combined.Year() != 2026 || combined.Month() != time.March || combined.Day() != 14 {
		t.Errorf("CombineDateTime() changed the date: %v", combined)
	}

	malformed := timezone.CombineDateTime(date, "not-a-time")
	if malformed.Hour() != 0 || malformed.Minute() != 0 {
		t.Errorf("CombineDateTime() with malformed input = %v, want midnight", malformed)
	}
}
