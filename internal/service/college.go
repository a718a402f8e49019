package service

import (
	"context"
	"fmt"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository"
)

var (
	ErrCollegeNotFound   = repository.ErrCollegeNotFound
	ErrCollegeCodeExists = repository.ErrCollegeCodeExists
)

type CollegeRepository interface {
	Create(ctx context.Context, college domain.College) (domain.College, error)
	FindByID(ctx context.Context, id uint) (domain.College, error)
	FindByCode(ctx context.Context, code string) (domain.College, error)
	FindAll(ctx context.Context) ([]domain.College, error)
	Update(ctx context.Context, college domain.College) (domain.College, error)
}

type CollegeService struct {
	repo CollegeRepository
}

func NewCollegeService(repo CollegeRepository) *CollegeService {
	return &CollegeService{
		repo: repo,
	}
}

func (s *CollegeService) CreateCollege(ctx context.Context, college domain.College) (domain.College, error) {
	created, err := s.repo.Create(ctx, college)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CollegeService) GetCollege(ctx context.Context, id uint) (domain.College, error) {
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return college, nil
}

func (s *CollegeService) ListColleges(ctx context.Context) ([]domain.College, error) {
	colleges, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return colleges, nil
}

func (s *CollegeService) UpdateCollege(ctx context.Context, college domain.College) (domain.College, error) {
	updated, err := s.repo.Update(ctx, college)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
