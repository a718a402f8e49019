package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MarkAttendanceRequest struct {
	StudentID uint   `json:"student_id"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (req *MarkAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Status, validation.Required, validation.In("present", "absent", "late")),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type CheckOutRequest struct {
	StudentID uint `json:"student_id"`
}

func (req *CheckOutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required, validation.Min(uint(1))),
	)
}
