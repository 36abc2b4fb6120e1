package volunteer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventhub/internal/errs"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

type DBLayer interface {
	CreateApplication(ctx context.Context, app models.VolunteerApplication) error
	GetApplicationByID(ctx context.Context, id string) (*models.VolunteerApplication, error)
	GetApplication(ctx context.Context, eventID, volunteerID string) (*models.VolunteerApplication, error)
	ListApplicationsByEvent(ctx context.Context, eventID string) ([]models.VolunteerApplication, error)
	DecideApplication(ctx context.Context, id string, decision models.ApplicationStatus) (bool, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
}

type Publisher interface {
	PublishApplicationDecided(n models.Notification) error
}

type Service struct {
	DB     DBLayer
	Kafka  Publisher
	Logger *logger.Logger
}

func NewService(db DBLayer, kafka Publisher, log *logger.Logger) *Service {
	return &Service{DB: db, Kafka: kafka, Logger: log}
}

// Apply files a pending application for the caller. One application per
// (event, volunteer) pair, ever; there is no withdraw-and-reapply.
func (s *Service) Apply(ctx context.Context, actor models.Actor, eventID string) (*models.VolunteerApplication, error) {
	if actor.Role != models.RoleVolunteer {
		return nil, errs.Forbiddenf("only volunteers can apply to work events")
	}
	if eventID == "" {
		return nil, errs.Validationf("event id is required")
	}

	if _, err := s.DB.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	existing, err := s.DB.GetApplication(ctx, eventID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflictf("an application for this event already exists")
	}

	app := models.VolunteerApplication{
		ID:          uuid.NewString(),
		EventID:     eventID,
		VolunteerID: actor.ID,
		Status:      models.ApplicationPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.DB.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.Logger.LogApplication("APPLY", app.ID, fmt.Sprintf("volunteer %s applied to event %s", actor.ID, eventID))
	return &app, nil
}

// Decide moves a pending application to approved or rejected. Only the
// event's owning organizer may decide, the transition is one-way, and a
// repeat decision is a conflict even when it names the same outcome.
func (s *Service) Decide(ctx context.Context, actor models.Actor, applicationID string, decision models.ApplicationStatus) (*models.VolunteerApplication, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, errs.Forbiddenf("only organizers can decide applications")
	}
	if decision != models.ApplicationApproved && decision != models.ApplicationRejected {
		return nil, errs.Validationf("decision must be approved or rejected")
	}

	app, err := s.DB.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	ev, err := s.DB.GetEventByID(ctx, app.EventID)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerID != actor.ID {
		return nil, errs.Forbiddenf("event belongs to another organizer")
	}

	if app.Status.Terminal() {
		return nil, errs.Conflictf("application is already %s", app.Status)
	}

	done, err := s.DB.DecideApplication(ctx, applicationID, decision)
	if err != nil {
		return nil, err
	}
	if !done {
		// Lost a race with another decision between the read and the
		// conditional update.
		return nil, errs.Conflictf("application was already decided")
	}

	app.Status = decision
	s.Logger.LogApplication("DECIDE", applicationID, fmt.Sprintf("organizer %s set %s", actor.ID, decision))

	if err := s.Kafka.PublishApplicationDecided(models.Notification{
		Type:          models.NotifyApplicationDecided,
		RecipientID:   app.VolunteerID,
		EventID:       app.EventID,
		ApplicationID: app.ID,
		Decision:      decision,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Publish error (application decided): %v", err))
	}

	return app, nil
}

// Status returns the caller's own application for an event, nil when none
// has been filed.
func (s *Service) Status(ctx context.Context, actor models.Actor, eventID string) (*models.VolunteerApplication, error) {
	if actor.Role != models.RoleVolunteer {
		return nil, errs.Forbiddenf("only volunteers have applications")
	}
	return s.DB.GetApplication(ctx, eventID, actor.ID)
}

// ListForEvent returns an event's applications for its owning organizer,
// volunteer profiles joined, oldest first.
func (s *Service) ListForEvent(ctx context.Context, actor models.Actor, eventID string) ([]models.VolunteerApplication, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, errs.Forbiddenf("only organizers can review applications")
	}

	ev, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerID != actor.ID {
		return nil, errs.Forbiddenf("event belongs to another organizer")
	}

	return s.DB.ListApplicationsByEvent(ctx, eventID)
}
