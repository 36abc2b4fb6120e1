package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventhub/internal/errs"
	"eventhub/internal/event"
	"eventhub/internal/models"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateEvent(ctx context.Context, ev models.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockDBLayer) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockDBLayer) UpdateEvent(ctx context.Context, ev models.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockDBLayer) ListPublishedEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockDBLayer) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

var organizer = models.Actor{ID: "organizer-1", Role: models.RoleOrganizer}

func validRequest() event.CreateRequest {
	return event.CreateRequest{
		Title:    "Go Meetup",
		Venue:    "Hall A",
		DateTime: time.Now().Add(48 * time.Hour),
		Capacity: 100,
		Price:    25,
	}
}

func TestCreate(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := event.NewService(mockDB, nil)
	ctx := context.Background()

	mockDB.On("CreateEvent", ctx, mock.MatchedBy(func(ev models.Event) bool {
		return ev.OrganizerID == organizer.ID && ev.Title == "Go Meetup" && ev.Status == models.EventPublished
	})).Return(nil)

	ev, err := svc.Create(ctx, organizer, validRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, models.EventPublished, ev.Status)
	mockDB.AssertExpectations(t)
}

func TestCreateRejectsNonOrganizers(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := event.NewService(mockDB, nil)

	attendee := models.Actor{ID: "attendee-1", Role: models.RoleAttendee}
	_, err := svc.Create(context.Background(), attendee, validRequest())

	assert.True(t, errs.IsForbidden(err))
	mockDB.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestCreateValidation(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := event.NewService(mockDB, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*event.CreateRequest)
	}{
		{"missing title", func(r *event.CreateRequest) { r.Title = "  " }},
		{"missing venue", func(r *event.CreateRequest) { r.Venue = "" }},
		{"missing date", func(r *event.CreateRequest) { r.DateTime = time.Time{} }},
		{"zero capacity", func(r *event.CreateRequest) { r.Capacity = 0 }},
		{"negative capacity", func(r *event.CreateRequest) { r.Capacity = -5 }},
		{"negative price", func(r *event.CreateRequest) { r.Price = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(ctx, organizer, req)
			assert.True(t, errs.IsValidation(err), "expected validation error, got %v", err)
		})
	}
	mockDB.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestUpdateForeignEvent(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := event.NewService(mockDB, nil)
	ctx := context.Background()

	ev := &models.Event{ID: "event-1", OrganizerID: "another-organizer", Title: "Theirs"}
	mockDB.On("GetEventByID", ctx, "event-1").Return(ev, nil)

	_, err := svc.Update(ctx, organizer, "event-1", validRequest())

	assert.True(t, errs.IsForbidden(err))
	mockDB.AssertNotCalled(t, "UpdateEvent", mock.Anything, mock.Anything)
}

func TestGetDerivesAvailability(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := event.NewService(mockDB, nil)
	ctx := context.Background()

	ev := &models.Event{ID: "event-1", Capacity: 100, BookingsCount: 37}
	mockDB.On("GetEventByID", ctx, "event-1").Return(ev, nil)

	details, err := svc.Get(ctx, "event-1")

	assert.NoError(t, err)
	assert.Equal(t, 63, details.AvailableSeats)
}

func TestListPublished(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := event.NewService(mockDB, nil)
	ctx := context.Background()

	events := []models.Event{
		{ID: "e1", Capacity: 10, BookingsCount: 10},
		{ID: "e2", Capacity: 10, BookingsCount: 0},
	}
	mockDB.On("ListPublishedEvents", ctx).Return(events, nil)

	details, err := svc.ListPublished(ctx)

	assert.NoError(t, err)
	assert.Len(t, details, 2)
	assert.Equal(t, 0, details[0].AvailableSeats)
	assert.Equal(t, 10, details[1].AvailableSeats)
}
