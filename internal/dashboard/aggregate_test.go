package dashboard

import (
	"testing"
	"time"

	"eventhub/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func TestComputeRevenueAndCounts(t *testing.T) {
	now := fixedNow()
	snap := Snapshot{
		Events: []models.Event{
			{ID: "e1", Title: "Go Meetup", Price: 10, Capacity: 50, Status: models.EventPublished, DateTime: now.AddDate(0, 1, 0)},
			{ID: "e2", Title: "Cloud Summit", Price: 20, Capacity: 100, Status: models.EventPublished, DateTime: now.AddDate(0, -1, 0)},
		},
		Bookings: []models.Booking{
			{ID: "b1", EventID: "e1", AttendeeID: "alice"},
			{ID: "b2", EventID: "e1", AttendeeID: "bob"},
			{ID: "b3", EventID: "e2", AttendeeID: "alice"},
		},
	}

	stats := Compute(snap, now)

	if stats.TotalRevenue != 40 {
		t.Errorf("TotalRevenue = %v, want 40", stats.TotalRevenue)
	}
	if stats.TicketsSold != 3 {
		t.Errorf("TicketsSold = %d, want 3", stats.TicketsSold)
	}
	// alice booked two events but is a single attendee.
	if stats.TotalAttendees != 2 {
		t.Errorf("TotalAttendees = %d, want 2", stats.TotalAttendees)
	}
	if stats.TotalEvents != 2 {
		t.Errorf("TotalEvents = %d, want 2", stats.TotalEvents)
	}
	// Only e1 is published and in the future.
	if stats.UpcomingEvents != 1 {
		t.Errorf("UpcomingEvents = %d, want 1", stats.UpcomingEvents)
	}
	if stats.AvgAttendanceRate != 150 {
		t.Errorf("AvgAttendanceRate = %v, want 150", stats.AvgAttendanceRate)
	}
	if stats.MostPopularEvent != "Go Meetup" {
		t.Errorf("MostPopularEvent = %q, want %q", stats.MostPopularEvent, "Go Meetup")
	}
}

func TestComputeNoEvents(t *testing.T) {
	stats := Compute(Snapshot{}, fixedNow())

	if stats.AvgAttendanceRate != 0 {
		t.Errorf("AvgAttendanceRate with no events = %v, want 0", stats.AvgAttendanceRate)
	}
	if stats.TotalRevenue != 0 || stats.TicketsSold != 0 || stats.TotalAttendees != 0 {
		t.Errorf("empty snapshot produced non-zero counters: %+v", stats)
	}
	if stats.MostPopularEvent != "" {
		t.Errorf("MostPopularEvent with no events = %q, want empty", stats.MostPopularEvent)
	}
}

func TestComputeMostPopularTieBreak(t *testing.T) {
	snap := Snapshot{
		Events: []models.Event{
			{ID: "e1", Title: "First"},
			{ID: "e2", Title: "Second"},
		},
		Bookings: []models.Booking{
			{ID: "b1", EventID: "e1", AttendeeID: "a"},
			{ID: "b2", EventID: "e2", AttendeeID: "b"},
		},
	}

	stats := Compute(snap, fixedNow())
	if stats.MostPopularEvent != "First" {
		t.Errorf("tie broke to %q, want first-encountered %q", stats.MostPopularEvent, "First")
	}
}

func TestMonthlyTrendZeroFills(t *testing.T) {
	now := fixedNow() // June 2025
	snap := Snapshot{
		Events: []models.Event{
			{ID: "e1", Price: 10},
			{ID: "e2", Price: 25},
		},
		Bookings: []models.Booking{
			{ID: "b1", EventID: "e1", CreatedAt: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "b2", EventID: "e2", CreatedAt: time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)},
			{ID: "b3", EventID: "e1", CreatedAt: time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)},
			// Outside the window, must not be counted.
			{ID: "b4", EventID: "e1", CreatedAt: time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC)},
		},
	}

	trend := MonthlyTrend(snap, now, 6)

	if len(trend) != 6 {
		t.Fatalf("len(trend) = %d, want 6", len(trend))
	}

	wantMonths := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	wantCounts := []int{0, 0, 0, 1, 0, 2}
	wantRevenue := []float64{0, 0, 0, 10, 0, 35}
	for i := range trend {
		if trend[i].Month != wantMonths[i] {
			t.Errorf("trend[%d].Month = %q, want %q", i, trend[i].Month, wantMonths[i])
		}
		if trend[i].Bookings != wantCounts[i] {
			t.Errorf("trend[%d].Bookings = %d, want %d", i, trend[i].Bookings, wantCounts[i])
		}
		if trend[i].Revenue != wantRevenue[i] {
			t.Errorf("trend[%d].Revenue = %v, want %v", i, trend[i].Revenue, wantRevenue[i])
		}
	}
}

func TestMonthlyTrendYearBoundary(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Events: []models.Event{{ID: "e1", Price: 15}},
		Bookings: []models.Booking{
			{ID: "b1", EventID: "e1", CreatedAt: time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC)},
		},
	}

	trend := MonthlyTrend(snap, now, 6)

	wantMonths := []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}
	for i := range trend {
		if trend[i].Month != wantMonths[i] {
			t.Errorf("trend[%d].Month = %q, want %q", i, trend[i].Month, wantMonths[i])
		}
	}
	if trend[2].Bookings != 1 {
		t.Errorf("November bucket = %d, want 1", trend[2].Bookings)
	}
	if trend[2].Revenue != 15 {
		t.Errorf("November revenue = %v, want 15", trend[2].Revenue)
	}
}

func TestMonthlyTrendNoBookings(t *testing.T) {
	trend := MonthlyTrend(Snapshot{}, fixedNow(), 6)
	if len(trend) != 6 {
		t.Fatalf("len(trend) = %d, want 6", len(trend))
	}
	for i, p := range trend {
		if p.Bookings != 0 {
			t.Errorf("trend[%d].Bookings = %d, want 0", i, p.Bookings)
		}
		if p.Revenue != 0 {
			t.Errorf("trend[%d].Revenue = %v, want 0", i, p.Revenue)
		}
	}
}

func TestCategoryDistribution(t *testing.T) {
	events := []models.Event{
		{ID: "e1", Category: "Tech"},
		{ID: "e2", Category: ""},
		{ID: "e3", Category: "Tech"},
		{ID: "e4", Category: "Music"},
	}

	dist := CategoryDistribution(events)

	want := []CategoryCount{
		{Category: "Tech", Count: 2},
		{Category: "Uncategorized", Count: 1},
		{Category: "Music", Count: 1},
	}
	if len(dist) != len(want) {
		t.Fatalf("len(dist) = %d, want %d", len(dist), len(want))
	}
	for i := range want {
		if dist[i] != want[i] {
			t.Errorf("dist[%d] = %+v, want %+v", i, dist[i], want[i])
		}
	}
}
