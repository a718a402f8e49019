package service

import (
	"context"
	"fmt"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository"
)

var (
	ErrStudentNotFound    = repository.ErrStudentNotFound
	ErrStudentEmailExists = repository.ErrStudentEmailExists
	ErrStudentIDExists    = repository.ErrStudentIDExists
)

type StudentRepository interface {
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	FindByID(ctx context.Context, id uint) (domain.Student, error)
	FindAll(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error)
	Update(ctx context.Context, student domain.Student) (domain.Student, error)
}

type StudentService struct {
	repo        StudentRepository
	collegeRepo CollegeRepository
}

func NewStudentService(repo StudentRepository, collegeRepo CollegeRepository) *StudentService {
	return &StudentService{
		repo:        repo,
		collegeRepo: collegeRepo,
	}
}

func (s *StudentService) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	if _, err := s.collegeRepo.FindByID(ctx, student.CollegeID); err != nil {
		return domain.Student{}, fmt.Errorf("s.collegeRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StudentService) GetStudent(ctx context.Context, id uint) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return student, nil
}

func (s *StudentService) ListStudents(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	students, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return students, nil
}

func (s *StudentService) UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	updated, err := s.repo.Update(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
