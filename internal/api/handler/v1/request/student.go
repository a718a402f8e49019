package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateStudentRequest struct {
	StudentID   string `json:"student_id"`
	CollegeID   uint   `json:"college_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
	YearOfStudy int    `json:"year_of_study"`
}

func (req *CreateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.CollegeID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 20)),
		validation.Field(&req.Department, validation.Length(0, 100)),
		validation.Field(&req.YearOfStudy, validation.Min(1), validation.Max(6)),
	)
}

type UpdateStudentRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
	YearOfStudy int    `json:"year_of_study"`
}

func (req *UpdateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 20)),
		validation.Field(&req.Department, validation.Length(0, 100)),
		validation.Field(&req.YearOfStudy, validation.Min(1), validation.Max(6)),
	)
}
