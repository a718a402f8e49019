package repository

import (
	"context"
	"fmt"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository/dao"
)

var (
	ErrStudentNotFound    = dao.ErrStudentNotFound
	ErrStudentEmailExists = dao.ErrStudentEmailExists
	ErrStudentIDExists    = dao.ErrStudentIDExists
)

type StudentDAO interface {
	Insert(ctx context.Context, student dao.Student) (dao.Student, error)
	FindByID(ctx context.Context, id uint) (dao.Student, error)
	FindByStudentID(ctx context.Context, collegeID uint, studentID string) (dao.Student, error)
	FindAll(ctx context.Context, filter dao.StudentFilter) ([]dao.Student, error)
	Update(ctx context.Context, student dao.Student) (dao.Student, error)
}

type StudentRepository struct {
	dao StudentDAO
}

func NewStudentRepository(dao StudentDAO) *StudentRepository {
	return &StudentRepository{
		dao: dao,
	}
}

func (r *StudentRepository) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	created, err := r.dao.Insert(ctx, dao.Student{
		StudentID:   student.StudentID,
		CollegeID:   student.CollegeID,
		FirstName:   student.FirstName,
		LastName:    student.LastName,
		Email:       student.Email,
		Phone:       student.Phone,
		Department:  student.Department,
		YearOfStudy: student.YearOfStudy,
	})
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return studentDaoToDomain(created), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (domain.Student, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return studentDaoToDomain(found), nil
}

func (r *StudentRepository) FindByStudentID(ctx context.Context, collegeID uint, studentID string) (domain.Student, error) {
	found, err := r.dao.FindByStudentID(ctx, collegeID, studentID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	return studentDaoToDomain(found), nil
}

func (r *StudentRepository) FindAll(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	found, err := r.dao.FindAll(ctx, dao.StudentFilter{
		CollegeID:  filter.CollegeID,
		Department: filter.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	students := make([]domain.Student, len(found))
	for i, student := range found {
		students[i] = studentDaoToDomain(student)
	}

	return students, nil
}

func (r *StudentRepository) Update(ctx context.Context, student domain.Student) (domain.Student, error) {
	updated, err := r.dao.Update(ctx, dao.Student{
		ID:          student.ID,
		FirstName:   student.FirstName,
		LastName:    student.LastName,
		Email:       student.Email,
		Phone:       student.Phone,
		Department:  student.Department,
		YearOfStudy: student.YearOfStudy,
	})
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return studentDaoToDomain(updated), nil
}

func studentDaoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:          s.ID,
		StudentID:   s.StudentID,
		CollegeID:   s.CollegeID,
		CollegeName: s.College.Name,
		CollegeCode: s.College.Code,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		Phone:       s.Phone,
		Department:  s.Department,
		YearOfStudy: s.YearOfStudy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
