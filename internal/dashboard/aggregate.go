// Package dashboard computes the organizer-facing KPIs. Everything in
// this file is a pure function over an in-memory snapshot of the
// organizer's events and bookings, so it is testable without a store.
package dashboard

import (
	"time"

	"eventhub/internal/models"
)

// Snapshot is a point-in-time copy of one organizer's collections.
// Cancelled bookings never appear: cancellation deletes the record.
type Snapshot struct {
	Events   []models.Event
	Bookings []models.Booking
}

type Stats struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TicketsSold       int     `json:"tickets_sold"`
	TotalAttendees    int     `json:"total_attendees"`
	TotalEvents       int     `json:"total_events"`
	UpcomingEvents    int     `json:"upcoming_events"`
	AvgAttendanceRate float64 `json:"avg_attendance_rate"`
	MostPopularEvent  string  `json:"most_popular_event"`
}

type TrendPoint struct {
	Month    string  `json:"month"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Compute derives the KPI block from a snapshot. Revenue attributes each
// booking its event's current price; attendees are counted once however
// many events they booked.
func Compute(snap Snapshot, now time.Time) Stats {
	priceByEvent := priceIndex(snap.Events)

	var revenue float64
	attendees := make(map[string]struct{})
	countByEvent := make(map[string]int)
	for _, b := range snap.Bookings {
		revenue += priceByEvent[b.EventID]
		attendees[b.AttendeeID] = struct{}{}
		countByEvent[b.EventID]++
	}

	var upcoming int
	for _, ev := range snap.Events {
		if ev.Status == models.EventPublished && ev.DateTime.After(now) {
			upcoming++
		}
	}

	stats := Stats{
		TotalRevenue:   revenue,
		TicketsSold:    len(snap.Bookings),
		TotalAttendees: len(attendees),
		TotalEvents:    len(snap.Events),
		UpcomingEvents: upcoming,
	}

	// Rate is defined as 0 for an organizer with no events.
	if len(snap.Events) > 0 {
		stats.AvgAttendanceRate = float64(len(snap.Bookings)) / float64(len(snap.Events)) * 100
	}

	// Ties break on first-encountered event order, which keeps the result
	// stable for a stable input ordering.
	best := -1
	for _, ev := range snap.Events {
		if c := countByEvent[ev.ID]; c > best {
			best = c
			stats.MostPopularEvent = ev.Title
		}
	}

	return stats
}

// MonthlyTrend buckets the snapshot's bookings into the trailing `months`
// calendar months ending at now's month. Each bucket carries both the
// booking count and the revenue those bookings earned at their event's
// current price. The result always has exactly `months` entries, oldest
// first, with quiet months reported as zero rather than omitted.
func MonthlyTrend(snap Snapshot, now time.Time, months int) []TrendPoint {
	if months <= 0 {
		return []TrendPoint{}
	}

	type bucket struct {
		year  int
		month time.Month
	}

	priceByEvent := priceIndex(snap.Events)
	index := make(map[bucket]int, months)
	trend := make([]TrendPoint, months)
	for i := 0; i < months; i++ {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-(months-1), 0)
		index[bucket{m.Year(), m.Month()}] = i
		trend[i] = TrendPoint{Month: m.Format("Jan")}
	}

	for _, b := range snap.Bookings {
		t := b.CreatedAt.UTC()
		if i, ok := index[bucket{t.Year(), t.Month()}]; ok {
			trend[i].Bookings++
			trend[i].Revenue += priceByEvent[b.EventID]
		}
	}

	return trend
}

func priceIndex(events []models.Event) map[string]float64 {
	prices := make(map[string]float64, len(events))
	for _, ev := range events {
		prices[ev.ID] = ev.Price
	}
	return prices
}

// CategoryDistribution counts events per category in first-encountered
// order, folding blank categories into "Uncategorized".
func CategoryDistribution(events []models.Event) []CategoryCount {
	order := []string{}
	counts := map[string]int{}
	for _, ev := range events {
		c := ev.Category
		if c == "" {
			c = "Uncategorized"
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	dist := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		dist = append(dist, CategoryCount{Category: c, Count: counts[c]})
	}
	return dist
}
