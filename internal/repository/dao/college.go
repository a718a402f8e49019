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
	ErrCollegeNotFound   = errors.New("college not found")
	ErrCollegeCodeExists = errors.New("college code already exists")
)

type College struct {
	ID uint `gorm:"primaryKey"`

	Code         string `gorm:"unique;not null"`
	Name         string `gorm:"not null"`
	Address      string
	ContactEmail string
	ContactPhone string

	Students []Student `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE"`
	Events   []Event   `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CollegeDAO struct {
	db *gorm.DB
}

func NewCollegeDAO(db *gorm.DB) *CollegeDAO {
	return &CollegeDAO{
		db: db,
	}
}

func (d *CollegeDAO) Insert(ctx context.Context, college College) (College, error) {
	result := d.db.WithContext(ctx).Create(&college)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `"uni_colleges_code"`) {
			return College{}, ErrCollegeCodeExists
		}

		return College{}, result.Error
	}

	return college, nil
}

func (d *CollegeDAO) FindByID(ctx context.Context, id uint) (College, error) {
	var college College

	result := d.db.WithContext(ctx).First(&college, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return College{}, ErrCollegeNotFound
		}

		return College{}, result.Error
	}

	return college, nil
}

func (d *CollegeDAO) FindByCode(ctx context.Context, code string) (College, error) {
	var college College

	result := d.db.WithContext(ctx).First(&college, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return College{}, ErrCollegeNotFound
		}

		return College{}, result.Error
	}

	return college, nil
}

func (d *CollegeDAO) FindAll(ctx context.Context) ([]College, error) {
	var colleges []College

	result := d.db.WithContext(ctx).Order("name").Find(&colleges)
	if result.Error != nil {
		return nil, result.Error
	}

	return colleges, nil
}

func (d *CollegeDAO) Update(ctx context.Context, college College) (College, error) {
	result := d.db.WithContext(ctx).Model(&College{ID: college.ID}).Updates(map[string]interface{}{
		"name":          college.Name,
		"address":       college.Address,
		"contact_email": college.ContactEmail,
		"contact_phone": college.ContactPhone,
	})
	if result.Error != nil {
		return College{}, result.Error
	}
	if result.RowsAffected == 0 {
		return College{}, ErrCollegeNotFound
	}

	return d.FindByID(ctx, college.ID)
}
