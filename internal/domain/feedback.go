package domain

import (
	"errors"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrFeedbackExists     = errors.New("feedback already submitted for this event")
	ErrAttendanceRequired = errors.New("student must have attended the event to provide feedback")
)

type Feedback struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	StudentID   uint      `json:"student_id"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	SubmittedAt time.Time `json:"submitted_at"`

	EventTitle  string `json:"event_title,omitempty"`
	EventCode   string `json:"event_code,omitempty"`
	StudentName string `json:"student_name,omitempty"`
}
