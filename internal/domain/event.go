package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusEnded     EventStatus = "ended"
	EventStatusCancelled EventStatus = "cancelled"
)

var EventTypes = []string{
	"hackathon", "workshop", "tech_talk", "fest", "seminar", "competition", "conference",
}

var (
	ErrEventNotActive = errors.New("event is not active")

	// Registration eligibility failures, one per reason code.
	ErrEventClosed         = errors.New("event is not open for registration")
	ErrRegistrationNotOpen = errors.New("registration has not opened yet")
	ErrRegistrationClosed  = errors.New("registration deadline has passed")
	ErrEventFull           = errors.New("event is at full capacity")
	ErrAlreadyRegistered   = errors.New("student is already registered for this event")
)

type EventFilter struct {
	CollegeID uint
	Status    string
	EventType string
}

type Event struct {
	ID                    uint        `json:"id"`
	EventCode             string      `json:"event_code"`
	CollegeID             uint        `json:"college_id"`
	CollegeName           string      `json:"college_name,omitempty"`
	CollegeCode           string      `json:"college_code,omitempty"`
	Title                 string      `json:"title"`
	Description           string      `json:"description"`
	EventType             string      `json:"event_type"`
	StartDate             time.Time   `json:"start_date"`
	EndDate               time.Time   `json:"end_date"`
	Location              string      `json:"location"`
	MaxParticipants       *int        `json:"max_participants"`
	RegistrationStartDate *time.Time  `json:"registration_start_date"`
	RegistrationDeadline  *time.Time  `json:"registration_deadline"`
	Status                EventStatus `json:"status"`
	CreatedBy             uint        `json:"created_by"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// CheckRegistrationOpen reports why a registration attempt at the given
// instant must be rejected, or nil when the window is open. Without an
// explicit deadline, registration closes when the event starts.
func (e Event) CheckRegistrationOpen(now time.Time) error {
	if e.Status != EventStatusActive {
		return ErrEventClosed
	}

	if e.RegistrationStartDate != nil && now.Before(*e.RegistrationStartDate) {
		return ErrRegistrationNotOpen
	}

	deadline := e.StartDate
	if e.RegistrationDeadline != nil {
		deadline = *e.RegistrationDeadline
	}
	if now.After(deadline) {
		return ErrRegistrationClosed
	}

	return nil
}

// IsFull reports whether the given active-registration count exhausts the
// capacity. Events without max_participants are never full.
func (e Event) IsFull(activeRegistrations int) bool {
	if e.MaxParticipants == nil {
		return false
	}

	return activeRegistrations >= *e.MaxParticipants
}

// End transitions active -> ended. The transition is irreversible.
func (e *Event) End() error {
	if e.Status != EventStatusActive {
		return ErrEventNotActive
	}
	e.Status = EventStatusEnded

	return nil
}

// Cancel transitions active -> cancelled. The transition is irreversible.
func (e *Event) Cancel() error {
	if e.Status != EventStatusActive {
		return ErrEventNotActive
	}
	e.Status = EventStatusCancelled

	return nil
}

// GenerateEventCode builds {COLLEGE}-{TYPE}-{YYYYMMDD}-{NNN} codes,
// e.g. "TECH-HACK-20260301-001". sequence is 1-based within the
// college/type/day bucket.
func GenerateEventCode(collegeCode, eventType string, startDate time.Time, sequence int) string {
	typeShort := strings.ToUpper(eventType)
	if len(typeShort) > 4 {
		typeShort = typeShort[:4]
	}

	return fmt.Sprintf("%s-%s-%s-%03d", collegeCode, typeShort, startDate.Format("20060102"), sequence)
}
