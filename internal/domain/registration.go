package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

type EventRegistration struct {
	ID               uint               `json:"id"`
	EventID          uint               `json:"event_id"`
	StudentID        uint               `json:"student_id"`
	RegistrationDate time.Time          `json:"registration_date"`
	Status           RegistrationStatus `json:"status"`

	EventTitle  string `json:"event_title,omitempty"`
	EventCode   string `json:"event_code,omitempty"`
	StudentName string `json:"student_name,omitempty"`
	StudentCode string `json:"student_code,omitempty"`
}
