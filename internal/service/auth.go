package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository"
)

var (
	ErrAdminEmailExists = repository.ErrAdminEmailExists
	ErrAdminNotFound    = repository.ErrAdminNotFound
	ErrWrongPassword    = errors.New("wrong password")
	ErrAdminInactive    = errors.New("admin account is deactivated")
)

type AuthAdminRepository interface {
	Create(ctx context.Context, admin domain.AdminUser) (domain.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (domain.AdminUser, error)
}

type AuthStudentRepository interface {
	FindByStudentID(ctx context.Context, collegeID uint, studentID string) (domain.Student, error)
}

type AuthCollegeRepository interface {
	FindByCode(ctx context.Context, code string) (domain.College, error)
}

type AuthService struct {
	adminRepo   AuthAdminRepository
	studentRepo AuthStudentRepository
	collegeRepo AuthCollegeRepository
}

func NewAuthService(adminRepo AuthAdminRepository, studentRepo AuthStudentRepository, collegeRepo AuthCollegeRepository) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		studentRepo: studentRepo,
		collegeRepo: collegeRepo,
	}
}

func (s *AuthService) Signup(ctx context.Context, admin domain.AdminUser) (domain.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AdminUser{}, err
	}
	admin.Password = string(hash)
	if admin.Role == "" {
		admin.Role = domain.RoleAdmin
	}

	created, err := s.adminRepo.Create(ctx, admin)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("s.adminRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AdminUser, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domain.AdminUser{}, ErrAdminNotFound
		}

		return domain.AdminUser{}, fmt.Errorf("s.adminRepo.FindByEmail -> %w", err)
	}

	if !admin.IsActive {
		return domain.AdminUser{}, ErrAdminInactive
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return domain.AdminUser{}, ErrWrongPassword
	}

	return admin, nil
}

// StudentLogin identifies a student by the college code and the
// college-issued student id. No password; possession of the id is the
// credential, matching the campus check-in desks this backs.
func (s *AuthService) StudentLogin(ctx context.Context, collegeCode, studentID string) (domain.Student, error) {
	college, err := s.collegeRepo.FindByCode(ctx, collegeCode)
	if err != nil {
		if errors.Is(err, repository.ErrCollegeNotFound) {
			return domain.Student{}, ErrCollegeNotFound
		}

		return domain.Student{}, fmt.Errorf("s.collegeRepo.FindByCode -> %w", err)
	}

	student, err := s.studentRepo.FindByStudentID(ctx, college.ID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return domain.Student{}, ErrStudentNotFound
		}

		return domain.Student{}, fmt.Errorf("s.studentRepo.FindByStudentID -> %w", err)
	}

	return student, nil
}
