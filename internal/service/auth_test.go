package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/campus-events-api/internal/domain"
)

type fakeAdminRepo struct {
	admins map[string]domain.AdminUser
}

func (f *fakeAdminRepo) Create(_ context.Context, admin domain.AdminUser) (domain.AdminUser, error) {
	if _, ok := f.admins[admin.Email]; ok {
		return domain.AdminUser{}, ErrAdminEmailExists
	}
	admin.ID = uint(len(f.admins) + 1)
	f.admins[admin.Email] = admin

	return admin, nil
}

func (f *fakeAdminRepo) FindByEmail(_ context.Context, email string) (domain.AdminUser, error) {
	admin, ok := f.admins[email]
	if !ok {
		return domain.AdminUser{}, ErrAdminNotFound
	}

	return admin, nil
}

type fakeAuthStudentRepo struct {
	students map[string]domain.Student
}

func (f *fakeAuthStudentRepo) FindByStudentID(_ context.Context, collegeID uint, studentID string) (domain.Student, error) {
	student, ok := f.students[studentID]
	if !ok || student.CollegeID != collegeID {
		return domain.Student{}, ErrStudentNotFound
	}

	return student, nil
}

func newAuthServiceFixture() (*AuthService, *fakeAdminRepo) {
	adminRepo := &fakeAdminRepo{admins: make(map[string]domain.AdminUser)}
	studentRepo := &fakeAuthStudentRepo{students: map[string]domain.Student{
		"STU-010": {ID: 10, StudentID: "STU-010", CollegeID: 1},
	}}
	collegeRepo := &fakeCollegeRepo{colleges: map[uint]domain.College{
		1: {ID: 1, Code: "TECH"},
	}}

	return NewAuthService(adminRepo, studentRepo, collegeRepo), adminRepo
}

func TestSignup(t *testing.T) {
	svc, repo := newAuthServiceFixture()
	ctx := context.Background()

	admin, err := svc.Signup(ctx, domain.AdminUser{
		Email:    "admin@example.com",
		Password: "str0ngpassword",
		Name:     "Admin",
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	stored := repo.admins["admin@example.com"]
	assert.NotEqual(t, "str0ngpassword", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("str0ngpassword")))

	_, err = svc.Signup(ctx, domain.AdminUser{Email: "admin@example.com", Password: "another0ne"})
	assert.ErrorIs(t, err, ErrAdminEmailExists)
}

func TestLogin(t *testing.T) {
	svc, repo := newAuthServiceFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.AdminUser{
		Email:    "admin@example.com",
		Password: "str0ngpassword",
		IsActive: true,
	})
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		admin, err := svc.Login(ctx, "admin@example.com", "str0ngpassword")

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", admin.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin@example.com", "wr0ngpassword")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "str0ngpassword")
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("deactivated account", func(t *testing.T) {
		admin := repo.admins["admin@example.com"]
		admin.IsActive = false
		repo.admins["admin@example.com"] = admin

		_, err := svc.Login(ctx, "admin@example.com", "str0ngpassword")
		assert.ErrorIs(t, err, ErrAdminInactive)
	})
}

func TestStudentLogin(t *testing.T) {
	svc, _ := newAuthServiceFixture()
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		student, err := svc.StudentLogin(ctx, "TECH", "STU-010")

		require.NoError(t, err)
		assert.Equal(t, uint(10), student.ID)
	})

	t.Run("unknown college", func(t *testing.T) {
		_, err := svc.StudentLogin(ctx, "NOPE", "STU-010")
		assert.ErrorIs(t, err, ErrCollegeNotFound)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.StudentLogin(ctx, "TECH", "STU-404")
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})
}
