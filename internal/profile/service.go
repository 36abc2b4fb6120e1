package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/errs"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

type DBLayer interface {
	CreateProfile(ctx context.Context, p models.Profile) error
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) error
}

type Service struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewService(db DBLayer, log *logger.Logger) *Service {
	return &Service{DB: db, Logger: log}
}

// RegisterRequest creates the profile row for a freshly authenticated
// identity. The role chosen here is permanent.
type RegisterRequest struct {
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
	Phone    string      `json:"phone"`
	Company  string      `json:"company"`
}

// UpdateRequest carries the self-editable profile fields. Role and email
// are absent on purpose.
type UpdateRequest struct {
	FullName  string   `json:"full_name"`
	Phone     string   `json:"phone"`
	Company   string   `json:"company"`
	Skills    []string `json:"skills"`
	AvatarURL string   `json:"avatar_url"`
}

// Register creates the caller's profile. One profile per authenticated
// identity; the id comes from the identity provider, not from us.
func (s *Service) Register(ctx context.Context, callerID string, req RegisterRequest) (*models.Profile, error) {
	if callerID == "" {
		return nil, errs.Validationf("caller id is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, errs.Validationf("email is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, errs.Validationf("full name is required")
	}
	if !req.Role.Valid() {
		return nil, errs.Validationf("role must be organizer, attendee or volunteer")
	}

	if existing, err := s.DB.GetProfileByID(ctx, callerID); err == nil && existing != nil {
		return nil, errs.Conflictf("profile already exists")
	} else if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}

	p := models.Profile{
		ID:        callerID,
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Role:      req.Role,
		Company:   req.Company,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.DB.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Info("PROFILE", fmt.Sprintf("Registered %s as %s", callerID, req.Role))
	return &p, nil
}

func (s *Service) Get(ctx context.Context, actor models.Actor) (*models.Profile, error) {
	return s.DB.GetProfileByID(ctx, actor.ID)
}

// Update rewrites the caller's editable fields, leaving role and email
// untouched.
func (s *Service) Update(ctx context.Context, actor models.Actor, req UpdateRequest) (*models.Profile, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, errs.Validationf("full name is required")
	}

	p, err := s.DB.GetProfileByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	p.FullName = req.FullName
	p.Phone = req.Phone
	p.Company = req.Company
	p.Skills = req.Skills
	p.AvatarURL = req.AvatarURL
	p.UpdatedAt = time.Now().UTC()

	if err := s.DB.UpdateProfile(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}
