package services

import (
	"context"
	"errors"
	"strings"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

type SessionService interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	Get(ctx context.Context, id uint) (*models.InterviewSession, error)
	List(ctx context.Context) ([]models.InterviewSession, error)
	SetStatus(ctx context.Context, id uint, status models.SessionStatus) error
}

type sessionService struct {
	sessions pgrepo.SessionRepository
}

func NewSessionService(sessions pgrepo.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Create(ctx context.Context, sess *models.InterviewSession) error {
	const op = "SessionService.Create"

	if sess == nil || strings.TrimSpace(sess.Name) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	sess.Name = strings.TrimSpace(sess.Name)
	if sess.Status == "" {
		sess.Status = models.SessionScheduled
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return nil
}

func (s *sessionService) Get(ctx context.Context, id uint) (*models.InterviewSession, error) {
	const op = "SessionService.Get"

	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}
	return sess, nil
}

func (s *sessionService) List(ctx context.Context) ([]models.InterviewSession, error) {
	const op = "SessionService.List"

	rows, err := s.sessions.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	return rows, nil
}

func (s *sessionService) SetStatus(ctx context.Context, id uint, status models.SessionStatus) error {
	const op = "SessionService.SetStatus"

	switch status {
	case models.SessionScheduled, models.SessionActive, models.SessionClosed:
	default:
		return utils.E(utils.CodeInvalidArgument, op, "invalid status", nil)
	}

	if err := s.sessions.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	return nil
}
