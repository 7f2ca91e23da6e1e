package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepositoryUpsert(t *testing.T) {
	db, mock := newMock(t)
	access := "enc-access"

	mock.ExpectExec(`INSERT INTO user_credentials .+ ON CONFLICT \(user_id, service\) DO UPDATE`).
		WithArgs(userID, models.ServiceGoogle, models.CredentialTypeOAuth2, &access, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewCredentialRepository(db).Upsert(context.Background(), &models.UserCredential{
		UserID: userID, Service: models.ServiceGoogle, CredentialType: models.CredentialTypeOAuth2, AccessToken: &access,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepositoryListByUserID(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM user_credentials WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "service", "credential_type", "access_token", "refresh_token",
			"client_id", "client_secret", "expires_at", "created_at", "updated_at"}).
			AddRow("c1", userID, "wordpress", "application_password", nil, nil, "editor", "enc", nil, now, now))

	creds, err := NewCredentialRepository(db).ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, "editor", *creds[0].ClientID)
	assert.False(t, creds[0].Expired(now))
}

func TestCredentialRepositoryRemoveMissing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM user_credentials`).
		WithArgs(userID, models.ServiceMeta).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewCredentialRepository(db).Remove(context.Background(), userID, models.ServiceMeta)
	assert.True(t, errors.Is(err, ErrNoRowsAffected))
}
