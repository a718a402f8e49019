package repository

import (
	"context"
	"fmt"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository/dao"
)

var (
	ErrCollegeNotFound   = dao.ErrCollegeNotFound
	ErrCollegeCodeExists = dao.ErrCollegeCodeExists
)

type CollegeDAO interface {
	Insert(ctx context.Context, college dao.College) (dao.College, error)
	FindByID(ctx context.Context, id uint) (dao.College, error)
	FindByCode(ctx context.Context, code string) (dao.College, error)
	FindAll(ctx context.Context) ([]dao.College, error)
	Update(ctx context.Context, college dao.College) (dao.College, error)
}

type CollegeRepository struct {
	dao CollegeDAO
}

func NewCollegeRepository(dao CollegeDAO) *CollegeRepository {
	return &CollegeRepository{
		dao: dao,
	}
}

func (r *CollegeRepository) Create(ctx context.Context, college domain.College) (domain.College, error) {
	created, err := r.dao.Insert(ctx, dao.College{
		Code:         college.Code,
		Name:         college.Name,
		Address:      college.Address,
		ContactEmail: college.ContactEmail,
		ContactPhone: college.ContactPhone,
	})
	if err != nil {
		return domain.College{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return collegeDaoToDomain(created), nil
}

func (r *CollegeRepository) FindByID(ctx context.Context, id uint) (domain.College, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.College{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return collegeDaoToDomain(found), nil
}

func (r *CollegeRepository) FindByCode(ctx context.Context, code string) (domain.College, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.College{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return collegeDaoToDomain(found), nil
}

func (r *CollegeRepository) FindAll(ctx context.Context) ([]domain.College, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	colleges := make([]domain.College, len(found))
	for i, college := range found {
		colleges[i] = collegeDaoToDomain(college)
	}

	return colleges, nil
}

func (r *CollegeRepository) Update(ctx context.Context, college domain.College) (domain.College, error) {
	updated, err := r.dao.Update(ctx, dao.College{
		ID:           college.ID,
		Name:         college.Name,
		Address:      college.Address,
		ContactEmail: college.ContactEmail,
		ContactPhone: college.ContactPhone,
	})
	if err != nil {
		return domain.College{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return collegeDaoToDomain(updated), nil
}

func collegeDaoToDomain(c dao.College) domain.College {
	return domain.College{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		Address:      c.Address,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
