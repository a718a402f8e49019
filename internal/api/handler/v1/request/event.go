package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campushq/campus-events-api/internal/domain"
)

var eventTypes = func() []interface{} {
	types := make([]interface{}, len(domain.EventTypes))
	for i, eventType := range domain.EventTypes {
		types[i] = eventType
	}

	return types
}()

var errEndBeforeStart = errors.New("end date must be after start date")

type CreateEventRequest struct {
	CollegeID             uint       `json:"college_id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	EventType             string     `json:"event_type"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               time.Time  `json:"end_date"`
	Location              string     `json:"location"`
	MaxParticipants       *int       `json:"max_participants"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationDeadline  *time.Time `json:"registration_deadline"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CollegeID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.EventType, validation.Required, validation.In(eventTypes...)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.Location, validation.Length(0, 200)),
	)
	if err != nil {
		return err
	}

	if !req.EndDate.After(req.StartDate) {
		return errEndBeforeStart
	}

	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return errors.New("max participants must be at least 1")
	}

	return nil
}

type UpdateEventRequest struct {
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	EventType             string     `json:"event_type"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               time.Time  `json:"end_date"`
	Location              string     `json:"location"`
	MaxParticipants       *int       `json:"max_participants"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationDeadline  *time.Time `json:"registration_deadline"`
}

func (req *UpdateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.EventType, validation.Required, validation.In(eventTypes...)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.Location, validation.Length(0, 200)),
	)
	if err != nil {
		return err
	}

	if !req.EndDate.After(req.StartDate) {
		return errEndBeforeStart
	}

	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return errors.New("max participants must be at least 1")
	}

	return nil
}

type RegisterStudentRequest struct {
	StudentID uint `json:"student_id"`
}

func (req *RegisterStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required, validation.Min(uint(1))),
	)
}
