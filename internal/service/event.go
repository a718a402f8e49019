package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository"
)

var (
	ErrEventNotFound   = repository.ErrEventNotFound
	ErrEventCodeExists = repository.ErrEventCodeExists
	ErrEventNotActive  = domain.ErrEventNotActive

	ErrEventClosed         = domain.ErrEventClosed
	ErrRegistrationNotOpen = domain.ErrRegistrationNotOpen
	ErrRegistrationClosed  = domain.ErrRegistrationClosed
	ErrEventFull           = domain.ErrEventFull
	ErrAlreadyRegistered   = domain.ErrAlreadyRegistered
	ErrNotRegistered       = domain.ErrNotRegistered
	ErrAttendanceNotFound  = domain.ErrAttendanceNotFound
	ErrInvalidRating       = domain.ErrInvalidRating
	ErrFeedbackExists      = domain.ErrFeedbackExists
	ErrAttendanceRequired  = domain.ErrAttendanceRequired

	ErrInvalidEventDates = errors.New("end date must be after start date")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.EventStatus) error
	NextEventCodeSequence(ctx context.Context, collegeID uint, eventType string, startDate time.Time) (int, error)
	CountActiveRegistrations(ctx context.Context, eventID uint) (int, error)
	Register(ctx context.Context, eventID, studentID uint, now time.Time) (domain.EventRegistration, error)
	CancelRegistration(ctx context.Context, eventID, studentID uint) error
	FindRegistration(ctx context.Context, eventID, studentID uint) (domain.EventRegistration, error)
	FindRegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.EventRegistration, error)
	FindRegistrationsByStudent(ctx context.Context, studentID uint) ([]domain.EventRegistration, error)
	UpsertAttendance(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error)
	FindAttendance(ctx context.Context, eventID, studentID uint) (domain.Attendance, error)
	FindAttendanceByEvent(ctx context.Context, eventID uint) ([]domain.Attendance, error)
	CheckOut(ctx context.Context, eventID, studentID uint, at time.Time) error
	CreateFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	FindFeedbackByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error)
}

type EventStudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
}

type EventService struct {
	repo        EventRepository
	collegeRepo CollegeRepository
	studentRepo EventStudentRepository

	// now is swappable in tests.
	now func() time.Time
}

func NewEventService(repo EventRepository, collegeRepo CollegeRepository, studentRepo EventStudentRepository) *EventService {
	return &EventService{
		repo:        repo,
		collegeRepo: collegeRepo,
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if !event.EndDate.After(event.StartDate) {
		return domain.Event{}, ErrInvalidEventDates
	}

	college, err := s.collegeRepo.FindByID(ctx, event.CollegeID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.collegeRepo.FindByID -> %w", err)
	}

	if event.EventCode == "" {
		sequence, err := s.repo.NextEventCodeSequence(ctx, event.CollegeID, event.EventType, event.StartDate)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.NextEventCodeSequence -> %w", err)
		}
		event.EventCode = domain.GenerateEventCode(college.Code, event.EventType, event.StartDate, sequence)
	}

	event.Status = domain.EventStatusActive

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, int, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	registrations, err := s.repo.CountActiveRegistrations(ctx, id)
	if err != nil {
		return domain.Event{}, 0, fmt.Errorf("s.repo.CountActiveRegistrations -> %w", err)
	}

	return event, registrations, nil
}

func (s *EventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if !event.EndDate.After(event.StartDate) {
		return domain.Event{}, ErrInvalidEventDates
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// EndEvent transitions active -> ended. Registrations and attendance
// rows are left untouched; only further mutations are blocked.
func (s *EventService) EndEvent(ctx context.Context, id uint) error {
	if err := s.repo.UpdateStatus(ctx, id, domain.EventStatusActive, domain.EventStatusEnded); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// CancelEvent transitions active -> cancelled.
func (s *EventService) CancelEvent(ctx context.Context, id uint) error {
	if err := s.repo.UpdateStatus(ctx, id, domain.EventStatusActive, domain.EventStatusCancelled); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// Register claims a seat. The capacity and duplicate checks run inside
// the repository transaction under a lock on the event row; the checks
// here only produce friendlier errors for the common cases.
func (s *EventService) Register(ctx context.Context, eventID, studentID uint) (domain.EventRegistration, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	registration, err := s.repo.Register(ctx, eventID, studentID, s.now())
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	return registration, nil
}

func (s *EventService) Unregister(ctx context.Context, eventID, studentID uint) error {
	if err := s.repo.CancelRegistration(ctx, eventID, studentID); err != nil {
		return fmt.Errorf("s.repo.CancelRegistration -> %w", err)
	}

	return nil
}

func (s *EventService) ListRegistrations(ctx context.Context, eventID uint) ([]domain.EventRegistration, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	registrations, err := s.repo.FindRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRegistrationsByEvent -> %w", err)
	}

	return registrations, nil
}

func (s *EventService) ListStudentRegistrations(ctx context.Context, studentID uint) ([]domain.EventRegistration, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	registrations, err := s.repo.FindRegistrationsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRegistrationsByStudent -> %w", err)
	}

	return registrations, nil
}

// MarkAttendance records that a registered student showed up. Marking is
// idempotent: a second call for the same pair overwrites status, notes
// and the marking admin instead of duplicating the row.
func (s *EventService) MarkAttendance(ctx context.Context, eventID, studentID uint, status domain.AttendanceStatus, notes string, markedBy uint) (domain.Attendance, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.Status != domain.EventStatusActive {
		return domain.Attendance{}, ErrEventNotActive
	}

	registration, err := s.repo.FindRegistration(ctx, eventID, studentID)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("s.repo.FindRegistration -> %w", err)
	}
	if registration.Status != domain.RegistrationStatusRegistered {
		return domain.Attendance{}, ErrNotRegistered
	}

	attendance, err := s.repo.UpsertAttendance(ctx, domain.Attendance{
		EventID:     eventID,
		StudentID:   studentID,
		CheckInTime: s.now(),
		Status:      status,
		MarkedBy:    markedBy,
		Notes:       notes,
	})
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("s.repo.UpsertAttendance -> %w", err)
	}

	return attendance, nil
}

func (s *EventService) CheckOut(ctx context.Context, eventID, studentID uint) error {
	if err := s.repo.CheckOut(ctx, eventID, studentID, s.now()); err != nil {
		return fmt.Errorf("s.repo.CheckOut -> %w", err)
	}

	return nil
}

func (s *EventService) ListAttendance(ctx context.Context, eventID uint) ([]domain.Attendance, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	attendance, err := s.repo.FindAttendanceByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAttendanceByEvent -> %w", err)
	}

	return attendance, nil
}

// SubmitFeedback accepts one rating per attended event. The present
// attendance requirement keeps drive-by ratings out of the analytics.
func (s *EventService) SubmitFeedback(ctx context.Context, eventID, studentID uint, rating int, comments string) (domain.Feedback, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.Feedback{}, ErrInvalidRating
	}

	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	attendance, err := s.repo.FindAttendance(ctx, eventID, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return domain.Feedback{}, ErrAttendanceRequired
		}

		return domain.Feedback{}, fmt.Errorf("s.repo.FindAttendance -> %w", err)
	}
	if attendance.Status != domain.AttendancePresent {
		return domain.Feedback{}, ErrAttendanceRequired
	}

	feedback, err := s.repo.CreateFeedback(ctx, domain.Feedback{
		EventID:     eventID,
		StudentID:   studentID,
		Rating:      rating,
		Comments:    comments,
		SubmittedAt: s.now(),
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.CreateFeedback -> %w", err)
	}

	return feedback, nil
}

func (s *EventService) ListFeedback(ctx context.Context, eventID uint) ([]domain.Feedback, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	feedback, err := s.repo.FindFeedbackByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFeedbackByEvent -> %w", err)
	}

	return feedback, nil
}
