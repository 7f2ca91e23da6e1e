package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/maheshrc27/contentflow/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/linkedin"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type CredentialService interface {
	AuthURL(service, state string) (string, error)
	Connect(ctx context.Context, userID, service, code string) error
	List(ctx context.Context, userID string) ([]transfer.CredentialView, error)
	SaveWordPress(ctx context.Context, userID string, req transfer.WordPressCredentialRequest) error
	Delete(ctx context.Context, userID, service string) error
}

type credentialService struct {
	cfg      config.Config
	cr       repository.CredentialRepository
	now      func() time.Time
	exchange func(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error)
	verify   func(ctx context.Context, service string, conf *oauth2.Config, token *oauth2.Token) error
}

func NewCredentialService(cfg config.Config, cr repository.CredentialRepository) CredentialService {
	return &credentialService{
		cfg:      cfg,
		cr:       cr,
		now:      time.Now,
		exchange: exchangeCode,
		verify:   verifyToken,
	}
}

func exchangeCode(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error) {
	return conf.Exchange(ctx, code)
}

// verifyToken reads the google account behind a fresh token. Other services
// are trusted on a successful exchange.
func verifyToken(ctx context.Context, service string, conf *oauth2.Config, token *oauth2.Token) error {
	if service != models.ServiceGoogle {
		return nil
	}
	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
	if err != nil {
		return err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return err
	}
	slog.Info("google account connected", "email", info.Email)
	return nil
}

func (s *credentialService) oauthConfig(service string) (*oauth2.Config, error) {
	var (
		client   config.OAuthClient
		endpoint oauth2.Endpoint
		scopes   []string
	)
	switch service {
	case models.ServiceGoogle:
		client, endpoint = s.cfg.Google, google.Endpoint
		scopes = []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		}
	case models.ServiceMeta:
		client, endpoint = s.cfg.Meta, facebook.Endpoint
		scopes = []string{"pages_manage_posts", "instagram_basic", "instagram_content_publish"}
	case models.ServiceLinkedIn:
		client, endpoint = s.cfg.LinkedIn, linkedin.Endpoint
		scopes = []string{"openid", "profile", "w_member_social"}
	default:
		return nil, fmt.Errorf("%w: unsupported service %q", ErrValidation, service)
	}

	if client.ClientID == "" || client.ClientSecret == "" || client.RedirectURI == "" {
		return nil, fmt.Errorf("%w: %s is not configured", ErrValidation, service)
	}
	return &oauth2.Config{
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		RedirectURL:  client.RedirectURI,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}, nil
}

func (s *credentialService) AuthURL(service, state string) (string, error) {
	conf, err := s.oauthConfig(service)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (s *credentialService) encrypt(value string) (*string, error) {
	if value == "" {
		return nil, nil
	}
	encrypted, err := utils.Encrypt([]byte(value), []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}
	return &encrypted, nil
}

func (s *credentialService) Connect(ctx context.Context, userID, service, code string) error {
	conf, err := s.oauthConfig(service)
	if err != nil {
		return err
	}
	if code == "" {
		return fmt.Errorf("%w: missing authorization code", ErrValidation)
	}

	token, err := s.exchange(ctx, conf, code)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("exchange %s code: %w", service, err)
	}
	if err := s.verify(ctx, service, conf, token); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("verify %s token: %w", service, err)
	}

	access, err := s.encrypt(token.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := s.encrypt(token.RefreshToken)
	if err != nil {
		return err
	}

	cred := &models.UserCredential{
		UserID:         userID,
		Service:        service,
		CredentialType: models.CredentialTypeOAuth2,
		AccessToken:    access,
		RefreshToken:   refresh,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC()
		cred.ExpiresAt = &expiry
	}
	return s.cr.Upsert(ctx, cred)
}

func (s *credentialService) List(ctx context.Context, userID string) ([]transfer.CredentialView, error) {
	creds, err := s.cr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	now := s.now()
	views := make([]transfer.CredentialView, 0, len(creds))
	for _, c := range creds {
		view := transfer.CredentialView{
			Service:        c.Service,
			CredentialType: c.CredentialType,
			ExpiresAt:      c.ExpiresAt,
			Expired:        c.Expired(now),
			UpdatedAt:      c.UpdatedAt,
		}
		if c.ClientID != nil {
			view.ClientID = *c.ClientID
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *credentialService) SaveWordPress(ctx context.Context, userID string, req transfer.WordPressCredentialRequest) error {
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	secret, err := s.encrypt(req.ApplicationPassword)
	if err != nil {
		return err
	}
	clientID := req.ClientID
	return s.cr.Upsert(ctx, &models.UserCredential{
		UserID:         userID,
		Service:        models.ServiceWordPress,
		CredentialType: models.CredentialTypeApplicationPassword,
		ClientID:       &clientID,
		ClientSecret:   secret,
	})
}

func (s *credentialService) Delete(ctx context.Context, userID, service string) error {
	switch service {
	case models.ServiceGoogle, models.ServiceMeta, models.ServiceLinkedIn, models.ServiceWordPress:
	default:
		return fmt.Errorf("%w: unsupported service %q", ErrValidation, service)
	}

	if err := s.cr.Remove(ctx, userID, service); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return fmt.Errorf("credential %s: %w", service, ErrNotFound)
		}
		return err
	}
	return nil
}
