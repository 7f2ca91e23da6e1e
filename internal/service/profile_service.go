package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type ProfileService interface {
	Get(ctx context.Context, userID, email string) (*models.Profile, error)
	Update(ctx context.Context, userID, email string, req transfer.ProfileRequest) (*models.Profile, error)
}

type profileService struct {
	pr repository.ProfileRepository
}

func NewProfileService(pr repository.ProfileRepository) ProfileService {
	return &profileService{pr: pr}
}

// Get returns an empty profile when none is stored yet.
func (s *profileService) Get(ctx context.Context, userID, email string) (*models.Profile, error) {
	p, found, err := s.pr.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		return &models.Profile{ID: userID, Email: email, SelectedPlatforms: []models.Platform{}}, nil
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, userID, email string, req transfer.ProfileRequest) (*models.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	p, err := s.Get(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	if p.Email == "" {
		p.Email = email
	}
	p.BrandGuidelines = req.BrandGuidelines
	p.PostingGuidelines = req.PostingGuidelines
	p.SelectedPlatforms = req.SelectedPlatforms
	if p.SelectedPlatforms == nil {
		p.SelectedPlatforms = []models.Platform{}
	}
	p.WebhookURL = req.WebhookURL

	if err := s.pr.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}
