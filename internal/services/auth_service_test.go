package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/testhelpers"
	"github.com/campushire/campushire/internal/utils"
)

const testJWTSecret = "test-secret"

func newAuthFixture(t *testing.T) (*gorm.DB, AuthService) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(pgrepo.NewAuthorizedUserRepo(db), pgrepo.NewRefreshTokenRepo(db), testJWTSecret)
	return db, svc
}

func TestIssueTokens(t *testing.T) {
	db, svc := newAuthFixture(t)
	ctx := context.Background()

	user := &models.AuthorizedUser{Email: "admin@corp.example.com", Name: "Admin", Role: models.RoleAdmin, Active: true}
	require.NoError(t, db.Create(user).Error)

	// Lookup is case-insensitive on email.
	pair, err := svc.IssueTokens(ctx, "  Admin@Corp.Example.Com ")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID, pair.User.ID)

	tok, err := jwt.Parse(pair.AccessToken, func(tk *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin@corp.example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "campushire", claims["iss"])

	// The stored refresh token is a hash, never the raw value.
	var stored models.RefreshToken
	require.NoError(t, db.Where("user_id = ?", user.ID).Take(&stored).Error)
	assert.NotEqual(t, pair.RefreshToken, stored.TokenHash)
	require.NoError(t, utils.CheckToken(stored.TokenHash, pair.RefreshToken))
}

func TestIssueTokensRejectsUnknownAndInactive(t *testing.T) {
	db, svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.IssueTokens(ctx, "nobody@corp.example.com")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	user := &models.AuthorizedUser{Email: "gone@corp.example.com", Active: true}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Model(user).UpdateColumn("active", false).Error)
	_, err = svc.IssueTokens(ctx, "gone@corp.example.com")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestRefreshRotatesToken(t *testing.T) {
	db, svc := newAuthFixture(t)
	ctx := context.Background()

	user := &models.AuthorizedUser{Email: "ivr@corp.example.com", Role: models.RoleInterviewer, Active: true}
	require.NoError(t, db.Create(user).Error)

	pair, err := svc.IssueTokens(ctx, user.Email)
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, user.ID, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The consumed token is revoked; replaying it fails.
	_, err = svc.Refresh(ctx, user.ID, pair.RefreshToken)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	// The rotated token still works.
	_, err = svc.Refresh(ctx, user.ID, next.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	db, svc := newAuthFixture(t)
	ctx := context.Background()

	user := &models.AuthorizedUser{Email: "fd@corp.example.com", Role: models.RoleFrontdesk, Active: true}
	require.NoError(t, db.Create(user).Error)
	_, err := svc.IssueTokens(ctx, user.Email)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, user.ID, "not-a-token")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}
