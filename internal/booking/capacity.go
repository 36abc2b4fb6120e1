package booking

// AvailableSeats derives the remaining capacity for an event from its
// capacity and the count of active bookings. Historic data can push the
// count past capacity, so the result may be negative; callers must treat
// anything <= 0 as full and never render the raw negative value.
func AvailableSeats(capacity, activeCount int) int {
	return capacity - activeCount
}

// IsFull reports whether a booking may no longer be permitted.
func IsFull(capacity, activeCount int) bool {
	return AvailableSeats(capacity, activeCount) <= 0
}
