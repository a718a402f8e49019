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
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentEmailExists = errors.New("student email already exists")
	ErrStudentIDExists    = errors.New("student id already exists for this college")
)

type Student struct {
	ID uint `gorm:"primaryKey"`

	StudentID string  `gorm:"not null;uniqueIndex:idx_students_college_sid"`
	CollegeID uint    `gorm:"not null;uniqueIndex:idx_students_college_sid;index"`
	College   College `gorm:"foreignKey:CollegeID"`

	FirstName   string `gorm:"not null"`
	LastName    string `gorm:"not null"`
	Email       string `gorm:"unique;not null"`
	Phone       string
	Department  string
	YearOfStudy int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudentFilter struct {
	CollegeID  uint
	Department string
}

type StudentDAO struct {
	db *gorm.DB
}

func NewStudentDAO(db *gorm.DB) *StudentDAO {
	return &StudentDAO{
		db: db,
	}
}

func (d *StudentDAO) Insert(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Create(&student)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, `"uni_students_email"`) {
				return Student{}, ErrStudentEmailExists
			}
			if strings.Contains(err.Message, `"idx_students_college_sid"`) {
				return Student{}, ErrStudentIDExists
			}
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByID(ctx context.Context, id uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).Preload("College").First(&student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

// FindByStudentID looks a student up by the college-issued identifier
// within one college. Used by student login.
func (d *StudentDAO) FindByStudentID(ctx context.Context, collegeID uint, studentID string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).
		Preload("College").
		First(&student, "college_id = ? AND student_id = ?", collegeID, studentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindAll(ctx context.Context, filter StudentFilter) ([]Student, error) {
	var students []Student

	query := d.db.WithContext(ctx).Preload("College").Order("last_name, first_name")
	if filter.CollegeID != 0 {
		query = query.Where("college_id = ?", filter.CollegeID)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	result := query.Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

func (d *StudentDAO) Update(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Model(&Student{ID: student.ID}).Updates(map[string]interface{}{
		"first_name":    student.FirstName,
		"last_name":     student.LastName,
		"email":         student.Email,
		"phone":         student.Phone,
		"department":    student.Department,
		"year_of_study": student.YearOfStudy,
	})
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `"uni_students_email"`) {
			return Student{}, ErrStudentEmailExists
		}

		return Student{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Student{}, ErrStudentNotFound
	}

	return d.FindByID(ctx, student.ID)
}
