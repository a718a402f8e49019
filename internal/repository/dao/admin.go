package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound    = errors.New("admin user not found")
	ErrAdminEmailExists = errors.New("admin email already exists")
)

type AdminUser struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Name     string `gorm:"not null"`

	CollegeID *uint   `gorm:"index"`
	College   College `gorm:"foreignKey:CollegeID"`

	Role     string `gorm:"not null;default:admin"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

func (d *AdminDAO) Insert(ctx context.Context, admin AdminUser) (AdminUser, error) {
	result := d.db.WithContext(ctx).Create(&admin)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `"uni_admin_users_email"`) {
			return AdminUser{}, ErrAdminEmailExists
		}

		return AdminUser{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByID(ctx context.Context, id uint) (AdminUser, error) {
	var admin AdminUser

	result := d.db.WithContext(ctx).First(&admin, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AdminUser{}, ErrAdminNotFound
		}

		return AdminUser{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByEmail(ctx context.Context, email string) (AdminUser, error) {
	var admin AdminUser

	result := d.db.WithContext(ctx).First(&admin, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AdminUser{}, ErrAdminNotFound
		}

		return AdminUser{}, result.Error
	}

	return admin, nil
}
