package domain

import (
	"errors"
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

var (
	ErrNotRegistered      = errors.New("student is not registered for this event")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

type Attendance struct {
	ID           uint             `json:"id"`
	EventID      uint             `json:"event_id"`
	StudentID    uint             `json:"student_id"`
	CheckInTime  time.Time        `json:"check_in_time"`
	CheckOutTime *time.Time       `json:"check_out_time"`
	Status       AttendanceStatus `json:"attendance_status"`
	MarkedBy     uint             `json:"marked_by"`
	Notes        string           `json:"notes"`

	StudentName string `json:"student_name,omitempty"`
	StudentCode string `json:"student_code,omitempty"`
}

// Duration returns the checked-in duration, or zero when not checked out.
func (a Attendance) Duration() time.Duration {
	if a.CheckOutTime == nil {
		return 0
	}

	return a.CheckOutTime.Sub(a.CheckInTime)
}
