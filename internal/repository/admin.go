package repository

import (
	"context"
	"fmt"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository/dao"
)

var (
	ErrAdminNotFound    = dao.ErrAdminNotFound
	ErrAdminEmailExists = dao.ErrAdminEmailExists
)

type AdminDAO interface {
	Insert(ctx context.Context, admin dao.AdminUser) (dao.AdminUser, error)
	FindByID(ctx context.Context, id uint) (dao.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (dao.AdminUser, error)
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin domain.AdminUser) (domain.AdminUser, error) {
	created, err := r.dao.Insert(ctx, dao.AdminUser{
		Email:     admin.Email,
		Password:  admin.Password,
		Name:      admin.Name,
		CollegeID: admin.CollegeID,
		Role:      admin.Role,
		IsActive:  true,
	})
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return adminDaoToDomain(created), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id uint) (domain.AdminUser, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return adminDaoToDomain(found), nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return adminDaoToDomain(found), nil
}

func adminDaoToDomain(a dao.AdminUser) domain.AdminUser {
	return domain.AdminUser{
		ID:        a.ID,
		Email:     a.Email,
		Password:  a.Password,
		Name:      a.Name,
		CollegeID: a.CollegeID,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
