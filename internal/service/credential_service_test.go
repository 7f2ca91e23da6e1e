package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/maheshrc27/contentflow/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newCredentialFixture(t *testing.T) (*credentialService, *memStore) {
	t.Helper()
	mem := newMemStore()
	cfg := config.Config{
		SecretKey: testSecretKey,
		Google:    config.OAuthClient{ClientID: "gid", ClientSecret: "gsecret", RedirectURI: "https://app.example.com/auth/google/callback"},
	}
	s := NewCredentialService(cfg, memCredentials{mem}).(*credentialService)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s, mem
}

func TestAuthURL(t *testing.T) {
	s, _ := newCredentialFixture(t)

	raw, err := s.AuthURL(models.ServiceGoogle, "state-token")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "gid", u.Query().Get("client_id"))
	assert.Equal(t, "state-token", u.Query().Get("state"))
	assert.Equal(t, "offline", u.Query().Get("access_type"))

	_, err = s.AuthURL(models.ServiceMeta, "state-token")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AuthURL("myspace", "state-token")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConnectStoresEncryptedTokens(t *testing.T) {
	s, mem := newCredentialFixture(t)
	expiry := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	s.exchange = func(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error) {
		assert.Equal(t, "auth-code", code)
		return &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: expiry}, nil
	}
	verified := false
	s.verify = func(ctx context.Context, service string, conf *oauth2.Config, token *oauth2.Token) error {
		verified = true
		return nil
	}

	require.NoError(t, s.Connect(context.Background(), testUser, models.ServiceGoogle, "auth-code"))
	assert.True(t, verified)

	cred := mem.credentials[testUser+"/"+models.ServiceGoogle]
	require.NotNil(t, cred.AccessToken)
	assert.NotEqual(t, "access", *cred.AccessToken)
	plain, err := utils.Decrypt(*cred.AccessToken, []byte(testSecretKey))
	require.NoError(t, err)
	assert.Equal(t, "access", plain)
	assert.Equal(t, models.CredentialTypeOAuth2, cred.CredentialType)
	assert.True(t, expiry.Equal(*cred.ExpiresAt))
}

func TestConnectFailures(t *testing.T) {
	s, mem := newCredentialFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Connect(ctx, testUser, models.ServiceGoogle, ""), ErrValidation)

	exchangeErr := errors.New("bad code")
	s.exchange = func(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error) {
		return nil, exchangeErr
	}
	assert.ErrorIs(t, s.Connect(ctx, testUser, models.ServiceGoogle, "code"), exchangeErr)
	assert.Zero(t, mem.Writes())
}

func TestListReportsExpiry(t *testing.T) {
	s, mem := newCredentialFixture(t)
	past := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	mem.credentials[testUser+"/google"] = models.UserCredential{UserID: testUser, Service: models.ServiceGoogle, CredentialType: models.CredentialTypeOAuth2, ExpiresAt: &past}
	mem.credentials[testUser+"/linkedin"] = models.UserCredential{UserID: testUser, Service: models.ServiceLinkedIn, CredentialType: models.CredentialTypeOAuth2, ExpiresAt: &future}
	mem.credentials[otherUser+"/meta"] = models.UserCredential{UserID: otherUser, Service: models.ServiceMeta}

	views, err := s.List(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, models.ServiceGoogle, views[0].Service)
	assert.True(t, views[0].Expired)
	assert.False(t, views[1].Expired)
}

func TestSaveWordPressAndDelete(t *testing.T) {
	s, mem := newCredentialFixture(t)
	ctx := context.Background()

	err := s.SaveWordPress(ctx, testUser, transfer.WordPressCredentialRequest{ClientID: "editor", ApplicationPassword: "short"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, s.SaveWordPress(ctx, testUser, transfer.WordPressCredentialRequest{ClientID: "editor", ApplicationPassword: "abcd efgh ijkl"}))
	cred := mem.credentials[testUser+"/"+models.ServiceWordPress]
	assert.Equal(t, "editor", *cred.ClientID)
	plain, err := utils.Decrypt(*cred.ClientSecret, []byte(testSecretKey))
	require.NoError(t, err)
	assert.Equal(t, "abcd efgh ijkl", plain)

	views, err := s.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "editor", views[0].ClientID)

	require.NoError(t, s.Delete(ctx, testUser, models.ServiceWordPress))
	assert.ErrorIs(t, s.Delete(ctx, testUser, models.ServiceWordPress), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, testUser, "myspace"), ErrValidation)
}
