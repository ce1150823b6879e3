package services

import (
	"context"
	"errors"
	"strings"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

type StudentService interface {
	Register(ctx context.Context, s *models.Student) error
	Get(ctx context.Context, id uint) (*models.Student, error)
	List(ctx context.Context, search string, limit int) ([]models.Student, error)
}

type studentService struct {
	students pgrepo.StudentRepository
}

func NewStudentService(students pgrepo.StudentRepository) StudentService {
	return &studentService{students: students}
}

func (s *studentService) Register(ctx context.Context, st *models.Student) error {
	const op = "StudentService.Register"

	if st == nil || strings.TrimSpace(st.Name) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	st.Name = strings.TrimSpace(st.Name)
	st.Email = strings.TrimSpace(st.Email)
	st.ZetaID = strings.TrimSpace(st.ZetaID)

	if err := s.students.Create(ctx, st); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to register student", err)
	}
	return nil
}

func (s *studentService) Get(ctx context.Context, id uint) (*models.Student, error) {
	const op = "StudentService.Get"

	st, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "student not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get student", err)
	}
	return st, nil
}

func (s *studentService) List(ctx context.Context, search string, limit int) ([]models.Student, error) {
	const op = "StudentService.List"

	rows, err := s.students.List(ctx, strings.TrimSpace(search), limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list students", err)
	}
	return rows, nil
}
