package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDefaultsWhenMissing(t *testing.T) {
	mem := newMemStore()
	s := NewProfileService(memProfiles{mem})

	p, err := s.Get(context.Background(), testUser, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, testUser, p.ID)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Empty(t, p.WebhookURL)
	assert.NotNil(t, p.SelectedPlatforms)
	assert.Zero(t, mem.Writes())
}

func TestProfileUpdate(t *testing.T) {
	mem := newMemStore()
	s := NewProfileService(memProfiles{mem})
	ctx := context.Background()

	p, err := s.Update(ctx, testUser, "ana@example.com", transfer.ProfileRequest{
		BrandGuidelines:   models.BrandGuidelines{Colors: []string{"#112233"}, Description: "calm"},
		PostingGuidelines: models.PostingGuidelines{Tone: "friendly", Language: "es"},
		SelectedPlatforms: []models.Platform{models.PlatformInstagram, models.PlatformWordPress},
		WebhookURL:        hookURL,
	})
	require.NoError(t, err)
	assert.Equal(t, hookURL, p.WebhookURL)

	stored, err := s.Get(ctx, testUser, "")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", stored.Email)
	assert.Equal(t, []models.Platform{models.PlatformInstagram, models.PlatformWordPress}, stored.SelectedPlatforms)
	assert.Equal(t, "friendly", stored.PostingGuidelines.Tone)
}

func TestProfileUpdateValidation(t *testing.T) {
	cases := map[string]transfer.ProfileRequest{
		"webhook":  {WebhookURL: "not a url"},
		"platform": {SelectedPlatforms: []models.Platform{"myspace"}},
		"color":    {BrandGuidelines: models.BrandGuidelines{Colors: []string{"blue"}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			mem := newMemStore()
			_, err := NewProfileService(memProfiles{mem}).Update(context.Background(), testUser, "", req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, mem.Writes())
		})
	}
}
