package services

import (
	"context"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

type ActivityService interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.StudentActivityLog, error)
}

type activityService struct {
	activities pgrepo.ActivityLogRepository
}

func NewActivityService(activities pgrepo.ActivityLogRepository) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) ListByStudent(ctx context.Context, studentID uint) ([]models.StudentActivityLog, error) {
	const op = "ActivityService.ListByStudent"

	if studentID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}
	rows, err := s.activities.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list activity", err)
	}
	return rows, nil
}
