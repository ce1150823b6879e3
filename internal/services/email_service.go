package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

// EmailService records outbound emails against a consolidation record. The
// actual delivery happens in the notification layer outside this service; we
// own the log and the derived activity entry.
type EmailService interface {
	Record(ctx context.Context, consolidationID uint, recipient, subject, body string, sentAt *time.Time) (*models.EmailLog, error)
	ListByConsolidation(ctx context.Context, consolidationID uint) ([]models.EmailLog, error)
}

type emailService struct {
	emails     pgrepo.EmailLogRepository
	records    pgrepo.ConsolidationRepository
	activities pgrepo.ActivityLogRepository
	log        *logrus.Logger
}

func NewEmailService(
	emails pgrepo.EmailLogRepository,
	records pgrepo.ConsolidationRepository,
	activities pgrepo.ActivityLogRepository,
	log *logrus.Logger,
) EmailService {
	if log == nil {
		log = logrus.New()
	}
	return &emailService{emails: emails, records: records, activities: activities, log: log}
}

func (s *emailService) Record(ctx context.Context, consolidationID uint, recipient, subject, body string, sentAt *time.Time) (*models.EmailLog, error) {
	const op = "EmailService.Record"

	recipient = strings.TrimSpace(recipient)
	if consolidationID == 0 || recipient == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "consolidation_id and recipient are required", nil)
	}

	rec, err := s.records.GetByID(ctx, consolidationID)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "consolidation record not found", err)
	}

	entry := &models.EmailLog{
		ConsolidationID: consolidationID,
		Recipient:       recipient,
		Subject:         strings.TrimSpace(subject),
		Body:            body,
		Status:          "sent",
		SentAt:          sentAt,
	}
	if err := s.emails.Create(ctx, entry); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record email", err)
	}

	if s.activities != nil {
		if _, err := s.activities.InsertIfAbsent(ctx, emailSentEntry(entry, rec.StudentID, rec.SessionID)); err != nil {
			s.log.WithError(err).Warn("failed to record email_sent activity")
		}
	}
	return entry, nil
}

func (s *emailService) ListByConsolidation(ctx context.Context, consolidationID uint) ([]models.EmailLog, error) {
	const op = "EmailService.ListByConsolidation"

	rows, err := s.emails.ListByConsolidation(ctx, consolidationID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list emails", err)
	}
	return rows, nil
}
