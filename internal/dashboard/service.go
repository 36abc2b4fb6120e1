package dashboard

import (
	"context"
	"time"

	"eventhub/internal/errs"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

const trendMonths = 6

type DBLayer interface {
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
	ListBookingsForOrganizer(ctx context.Context, organizerID string) ([]models.Booking, error)
}

// Service fetches one organizer's snapshot and hands it to the pure
// aggregate functions. Fetch and compute stay separated so the math is
// testable without a live store.
type Service struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewService(db DBLayer, log *logger.Logger) *Service {
	return &Service{DB: db, Logger: log}
}

type EventAttendance struct {
	Title    string `json:"title"`
	Bookings int    `json:"bookings"`
}

type Analysis struct {
	Stats                Stats             `json:"stats"`
	BookingsTrend        []TrendPoint      `json:"bookings_trend"`
	EventAttendance      []EventAttendance `json:"event_attendance"`
	CategoryDistribution []CategoryCount   `json:"category_distribution"`
}

func (s *Service) snapshot(ctx context.Context, actor models.Actor) (*Snapshot, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, errs.Forbiddenf("only organizers have a dashboard")
	}

	events, err := s.DB.ListEventsByOrganizer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.DB.ListBookingsForOrganizer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Events: events, Bookings: bookings}, nil
}

func (s *Service) Stats(ctx context.Context, actor models.Actor) (*Stats, error) {
	snap, err := s.snapshot(ctx, actor)
	if err != nil {
		return nil, err
	}
	stats := Compute(*snap, time.Now().UTC())
	return &stats, nil
}

func (s *Service) Analysis(ctx context.Context, actor models.Actor) (*Analysis, error) {
	snap, err := s.snapshot(ctx, actor)
	if err != nil {
		return nil, err
	}

	attendance := make([]EventAttendance, 0, len(snap.Events))
	for i, ev := range snap.Events {
		if i == 10 {
			break
		}
		attendance = append(attendance, EventAttendance{Title: ev.Title, Bookings: ev.BookingsCount})
	}

	return &Analysis{
		Stats:                Compute(*snap, time.Now().UTC()),
		BookingsTrend:        MonthlyTrend(*snap, time.Now().UTC(), trendMonths),
		EventAttendance:      attendance,
		CategoryDistribution: CategoryDistribution(snap.Events),
	}, nil
}
