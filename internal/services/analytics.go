package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/iterator"
)

// TimeRange selects how far back the activity dashboard looks
type TimeRange string

const (
	TimeRangeDays   TimeRange = "days"   // last 14 days
	TimeRangeWeeks  TimeRange = "weeks"  // last 6 weeks
	TimeRangeMonths TimeRange = "months" // last 6 months
)

// ParseTimeRange validates a raw range value, defaulting to days
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case TimeRangeWeeks, TimeRangeMonths:
		return TimeRange(s)
	}
	return TimeRangeDays
}

func (r TimeRange) start(now time.Time) time.Time {
	switch r {
	case TimeRangeWeeks:
		return now.AddDate(0, 0, -42)
	case TimeRangeMonths:
		return now.AddDate(0, -6, 0)
	}
	return now.AddDate(0, 0, -14)
}

func (r TimeRange) dateKey(t time.Time) string {
	if r == TimeRangeMonths {
		return t.Format("Jan 2 2006")
	}
	return t.Format("Jan 2")
}

// ActivityBucket is one day of request activity for the admin dashboard
type ActivityBucket struct {
	Date        string `json:"date"`
	Complaints  int    `json:"complaints"`
	Maintenance int    `json:"maintenance"`
	Sleepovers  int    `json:"sleepover"`
	Guests      int    `json:"guests"`
}

// bucketActivity distributes per-collection creation timestamps into
// day buckets between start and now. Days without activity are present
// with zero counts.
func bucketActivity(rng TimeRange, start, now time.Time, complaints, maintenance, sleepovers, guests []time.Time) []ActivityBucket {
	index := map[string]int{}
	buckets := []ActivityBucket{}

	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		key := rng.dateKey(d)
		index[key] = len(buckets)
		buckets = append(buckets, ActivityBucket{Date: key})
	}

	count := func(stamps []time.Time, bump func(*ActivityBucket)) {
		for _, ts := range stamps {
			if i, ok := index[rng.dateKey(ts)]; ok {
				bump(&buckets[i])
			}
		}
	}
	count(complaints, func(b *ActivityBucket) { b.Complaints++ })
	count(maintenance, func(b *ActivityBucket) { b.Maintenance++ })
	count(sleepovers, func(b *ActivityBucket) { b.Sleepovers++ })
	count(guests, func(b *ActivityBucket) { b.Guests++ })

	return buckets
}

// createdSince collects creation timestamps for documents created on or
// after the given instant
func (s *RequestStore) createdSince(ctx context.Context, collection string, since time.Time) ([]time.Time, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(collection).
		Where("createdAt", ">=", since).
		Documents(ctx)
	defer iter.Stop()

	stamps := []time.Time{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s activity: %w: %w", collection, ErrStoreUnavailable, err)
		}
		if ts, ok := doc.Data()["createdAt"].(time.Time); ok {
			stamps = append(stamps, ts)
		}
	}
	return stamps, nil
}

// Activity aggregates request activity across all four ticket
// collections into per-day buckets for the admin dashboard
func (s *RequestStore) Activity(ctx context.Context, rng TimeRange) ([]ActivityBucket, error) {
	now := time.Now()
	start := rng.start(now)

	complaints, err := s.createdSince(ctx, complaintsCollection, start)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.createdSince(ctx, maintenanceCollection, start)
	if err != nil {
		return nil, err
	}
	sleepovers, err := s.createdSince(ctx, sleepoversCollection, start)
	if err != nil {
		return nil, err
	}
	guests, err := s.createdSince(ctx, guestsCollection, start)
	if err != nil {
		return nil, err
	}

	return bucketActivity(rng, start, now, complaints, maintenance, sleepovers, guests), nil
}
