package booking

import "testing"

func TestAvailableSeats(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		active   int
		want     int
	}{
		{"empty event", 100, 0, 100},
		{"partially booked", 100, 37, 63},
		{"exactly full", 50, 50, 0},
		{"oversold by stale data", 50, 53, -3},
		{"zero capacity", 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AvailableSeats(tc.capacity, tc.active); got != tc.want {
				t.Errorf("AvailableSeats(%d, %d) = %d, want %d", tc.capacity, tc.active, got, tc.want)
			}
		})
	}
}

func TestIsFull(t *testing.T) {
	if IsFull(10, 9) {
		t.Error("event with one seat left reported full")
	}
	if !IsFull(10, 10) {
		t.Error("event at capacity not reported full")
	}
	// Negative availability still blocks new bookings.
	if !IsFull(10, 12) {
		t.Error("oversold event not reported full")
	}
}
