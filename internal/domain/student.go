package domain

import "time"

type Student struct {
	ID          uint      `json:"id"`
	StudentID   string    `json:"student_id"`
	CollegeID   uint      `json:"college_id"`
	CollegeName string    `json:"college_name,omitempty"`
	CollegeCode string    `json:"college_code,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Department  string    `json:"department"`
	YearOfStudy int       `json:"year_of_study"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type StudentFilter struct {
	CollegeID  uint
	Department string
}
