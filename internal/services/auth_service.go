package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type TokenPair struct {
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
	User         models.AuthorizedUser `json:"user"`
}

type AuthService interface {
	// IssueTokens exchanges an already-verified identity (the OAuth callback
	// layer sits in front of this service) for an app token pair. Only active
	// authorized_users get in.
	IssueTokens(ctx context.Context, email string) (*TokenPair, error)
	Refresh(ctx context.Context, userID uint, refreshToken string) (*TokenPair, error)
}

type authService struct {
	users  pgrepo.AuthorizedUserRepository
	tokens pgrepo.RefreshTokenRepository
	secret []byte
}

func NewAuthService(users pgrepo.AuthorizedUserRepository, tokens pgrepo.RefreshTokenRepository, jwtSecret string) AuthService {
	return &authService{users: users, tokens: tokens, secret: []byte(jwtSecret)}
}

func (s *authService) IssueTokens(ctx context.Context, email string) (*TokenPair, error) {
	const op = "AuthService.IssueTokens"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeForbidden, op, "not an authorized user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	if !user.Active {
		return nil, utils.E(utils.CodeForbidden, op, "user is deactivated", nil)
	}

	return s.mint(ctx, op, user)
}

func (s *authService) Refresh(ctx context.Context, userID uint, refreshToken string) (*TokenPair, error) {
	const op = "AuthService.Refresh"

	if userID == 0 || refreshToken == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and refresh_token are required", nil)
	}

	active, err := s.tokens.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load refresh tokens", err)
	}

	var matched *models.RefreshToken
	for i := range active {
		if utils.CheckToken(active[i].TokenHash, refreshToken) == nil {
			matched = &active[i]
			break
		}
	}
	if matched == nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid refresh token", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	if !user.Active {
		return nil, utils.E(utils.CodeForbidden, op, "user is deactivated", nil)
	}

	// Rotate: old token dies with the new pair.
	if err := s.tokens.Revoke(ctx, matched.ID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to rotate refresh token", err)
	}

	return s.mint(ctx, op, user)
}

func (s *authService) mint(ctx context.Context, op string, user *models.AuthorizedUser) (*TokenPair, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  string(user.Role),
		"iss":   utils.TokenIssuer,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign access token", err)
	}

	refresh := uuid.NewString()
	hash, err := utils.HashToken(refresh)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash refresh token", err)
	}
	if err := s.tokens.Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(refreshTokenTTL),
	}); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store refresh token", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: *user}, nil
}
