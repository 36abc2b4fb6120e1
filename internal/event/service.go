package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventhub/internal/booking"
	"eventhub/internal/errs"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

type DBLayer interface {
	CreateEvent(ctx context.Context, ev models.Event) error
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, ev models.Event) error
	ListPublishedEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
}

type Service struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewService(db DBLayer, log *logger.Logger) *Service {
	return &Service{DB: db, Logger: log}
}

// CreateRequest carries the organizer-editable fields of an event.
type CreateRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Venue       string             `json:"venue"`
	DateTime    time.Time          `json:"date_time"`
	Capacity    int                `json:"capacity"`
	Category    string             `json:"category"`
	BannerURL   string             `json:"banner_url"`
	Price       float64            `json:"price"`
	Status      models.EventStatus `json:"status"`
}

func (r CreateRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errs.Validationf("title is required")
	}
	if strings.TrimSpace(r.Venue) == "" {
		return errs.Validationf("venue is required")
	}
	if r.DateTime.IsZero() {
		return errs.Validationf("date and time are required")
	}
	if r.Capacity <= 0 {
		return errs.Validationf("capacity must be positive")
	}
	if r.Price < 0 {
		return errs.Validationf("price cannot be negative")
	}
	return nil
}

// Create registers a new event owned by the calling organizer. Status
// defaults to published, matching the create form.
func (s *Service) Create(ctx context.Context, actor models.Actor, req CreateRequest) (*models.Event, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, errs.Forbiddenf("only organizers can create events")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.EventPublished
	}

	ev := models.Event{
		ID:          uuid.NewString(),
		OrganizerID: actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		DateTime:    req.DateTime,
		Capacity:    req.Capacity,
		Category:    req.Category,
		BannerURL:   req.BannerURL,
		Status:      status,
		Price:       req.Price,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.DB.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}

	s.Logger.Info("EVENT", fmt.Sprintf("Organizer %s created event %s (%s)", actor.ID, ev.ID, ev.Title))
	return &ev, nil
}

// Update rewrites the editable fields of the caller's own event.
func (s *Service) Update(ctx context.Context, actor models.Actor, eventID string, req CreateRequest) (*models.Event, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, errs.Forbiddenf("only organizers can update events")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	ev, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerID != actor.ID {
		return nil, errs.Forbiddenf("event belongs to another organizer")
	}

	ev.Title = req.Title
	ev.Description = req.Description
	ev.Venue = req.Venue
	ev.DateTime = req.DateTime
	ev.Capacity = req.Capacity
	ev.Category = req.Category
	ev.BannerURL = req.BannerURL
	ev.Price = req.Price
	if req.Status != "" {
		ev.Status = req.Status
	}
	ev.UpdatedAt = time.Now().UTC()

	if err := s.DB.UpdateEvent(ctx, *ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Get returns one event with its derived seat availability. The seat
// count is recomputed from this read's booking count, never cached.
func (s *Service) Get(ctx context.Context, eventID string) (*models.EventDetails, error) {
	ev, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return withSeats(*ev), nil
}

// ListPublished returns every published event with derived availability,
// soonest first.
func (s *Service) ListPublished(ctx context.Context) ([]models.EventDetails, error) {
	events, err := s.DB.ListPublishedEvents(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]models.EventDetails, 0, len(events))
	for _, ev := range events {
		details = append(details, *withSeats(ev))
	}
	return details, nil
}

// ListMine returns the calling organizer's own events, newest first.
func (s *Service) ListMine(ctx context.Context, actor models.Actor) ([]models.EventDetails, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, errs.Forbiddenf("only organizers have their own events")
	}
	events, err := s.DB.ListEventsByOrganizer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	details := make([]models.EventDetails, 0, len(events))
	for _, ev := range events {
		details = append(details, *withSeats(ev))
	}
	return details, nil
}

func withSeats(ev models.Event) *models.EventDetails {
	return &models.EventDetails{
		Event:          ev,
		AvailableSeats: booking.AvailableSeats(ev.Capacity, ev.BookingsCount),
	}
}
