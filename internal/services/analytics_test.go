package services

import (
	"testing"
	"time"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input string
		want  TimeRange
	}{
		{"days", TimeRangeDays},
		{"weeks", TimeRangeWeeks},
		{"months", TimeRangeMonths},
		{"", TimeRangeDays},
		{"years", TimeRangeDays},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			if got := ParseTimeRange(tt.input); got != tt.want {
				t.Errorf("ParseTimeRange(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBucketActivity(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	complaints := []time.Time{
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC),
	}
	maintenance := []time.Time{
		time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	guests := []time.Time{
		time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC),
	}

	buckets := bucketActivity(TimeRangeDays, start, now, complaints, maintenance, nil, guests)

	if len(buckets) != 4 {
		t.Fatalf("bucketActivity() returned %d buckets; want 4", len(buckets))
	}

	wantCounts := []struct {
		date        string
		complaints  int
		maintenance int
		guests      int
	}{
		{"Mar 1", 2, 0, 0},
		{"Mar 2", 0, 1, 0},
		{"Mar 3", 1, 0, 0},
		{"Mar 4", 0, 0, 1},
	}

	for i, want := range wantCounts {
		got := buckets[i]
		if got.Date != want.date {
			t.Errorf("bucket %d date = %q; want %q", i, got.Date, want.date)
		}
		if got.Complaints != want.complaints || got.Maintenance != want.maintenance || got.Guests != want.guests {
			t.Errorf("bucket %s counts = (c=%d, m=%d, g=%d); want (c=%d, m=%d, g=%d)",
				want.date, got.Complaints, got.Maintenance, got.Guests,
				want.complaints, want.maintenance, want.guests)
		}
		if got.Sleepovers != 0 {
			t.Errorf("bucket %s sleepovers = %d; want 0", want.date, got.Sleepovers)
		}
	}
}

func TestBucketActivityIgnoresOutOfRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	// Before the window; must not land in any bucket
	complaints := []time.Time{time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)}

	buckets := bucketActivity(TimeRangeDays, start, now, complaints, nil, nil, nil)
	for _, b := range buckets {
		if b.Complaints != 0 {
			t.Errorf("bucket %s complaints = %d; want 0", b.Date, b.Complaints)
		}
	}
}
