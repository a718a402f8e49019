package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository/dao"
)

var (
	ErrEventNotFound   = dao.ErrEventNotFound
	ErrEventCodeExists = dao.ErrEventCodeExists
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context, filter dao.EventFilter) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	UpdateStatus(ctx context.Context, id uint, from, to string) error
	CountSameDay(ctx context.Context, collegeID uint, eventType string, dayStart, dayEnd time.Time) (int64, error)
	CountActiveRegistrations(ctx context.Context, eventID uint) (int64, error)
	RegisterStudent(ctx context.Context, eventID, studentID uint, now time.Time) (dao.EventRegistration, error)
	CancelRegistration(ctx context.Context, eventID, studentID uint) error
	FindRegistration(ctx context.Context, eventID, studentID uint) (dao.EventRegistration, error)
	FindRegistrationsByEvent(ctx context.Context, eventID uint) ([]dao.EventRegistration, error)
	FindRegistrationsByStudent(ctx context.Context, studentID uint) ([]dao.EventRegistration, error)
	UpsertAttendance(ctx context.Context, attendance dao.Attendance) (dao.Attendance, error)
	FindAttendance(ctx context.Context, eventID, studentID uint) (dao.Attendance, error)
	FindAttendanceByEvent(ctx context.Context, eventID uint) ([]dao.Attendance, error)
	CheckOutAttendance(ctx context.Context, eventID, studentID uint, at time.Time) error
	InsertFeedback(ctx context.Context, feedback dao.Feedback) (dao.Feedback, error)
	FindFeedbackByEvent(ctx context.Context, eventID uint) ([]dao.Feedback, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx, dao.EventFilter{
		CollegeID: filter.CollegeID,
		Status:    filter.Status,
		EventType: filter.EventType,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, event := range found {
		events[i] = eventDaoToDomain(event)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDaoToDomain(updated), nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.EventStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(from), string(to)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

// NextEventCodeSequence returns the 1-based sequence number for a new
// event in the college/type/day bucket of startDate.
func (r *EventRepository) NextEventCodeSequence(ctx context.Context, collegeID uint, eventType string, startDate time.Time) (int, error) {
	dayStart := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	count, err := r.dao.CountSameDay(ctx, collegeID, eventType, dayStart, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountSameDay -> %w", err)
	}

	return int(count) + 1, nil
}

func (r *EventRepository) CountActiveRegistrations(ctx context.Context, eventID uint) (int, error) {
	count, err := r.dao.CountActiveRegistrations(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActiveRegistrations -> %w", err)
	}

	return int(count), nil
}

func (r *EventRepository) Register(ctx context.Context, eventID, studentID uint, now time.Time) (domain.EventRegistration, error) {
	created, err := r.dao.RegisterStudent(ctx, eventID, studentID, now)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.RegisterStudent -> %w", err)
	}

	return registrationDaoToDomain(created), nil
}

func (r *EventRepository) CancelRegistration(ctx context.Context, eventID, studentID uint) error {
	if err := r.dao.CancelRegistration(ctx, eventID, studentID); err != nil {
		return fmt.Errorf("r.dao.CancelRegistration -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindRegistration(ctx context.Context, eventID, studentID uint) (domain.EventRegistration, error) {
	found, err := r.dao.FindRegistration(ctx, eventID, studentID)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.FindRegistration -> %w", err)
	}

	return registrationDaoToDomain(found), nil
}

func (r *EventRepository) FindRegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.EventRegistration, error) {
	found, err := r.dao.FindRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRegistrationsByEvent -> %w", err)
	}

	return registrationsDaoToDomain(found), nil
}

func (r *EventRepository) FindRegistrationsByStudent(ctx context.Context, studentID uint) ([]domain.EventRegistration, error) {
	found, err := r.dao.FindRegistrationsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRegistrationsByStudent -> %w", err)
	}

	return registrationsDaoToDomain(found), nil
}

func (r *EventRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	saved, err := r.dao.UpsertAttendance(ctx, dao.Attendance{
		EventID:     attendance.EventID,
		StudentID:   attendance.StudentID,
		CheckInTime: attendance.CheckInTime,
		Status:      string(attendance.Status),
		MarkedBy:    attendance.MarkedBy,
		Notes:       attendance.Notes,
	})
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.UpsertAttendance -> %w", err)
	}

	return attendanceDaoToDomain(saved), nil
}

func (r *EventRepository) FindAttendance(ctx context.Context, eventID, studentID uint) (domain.Attendance, error) {
	found, err := r.dao.FindAttendance(ctx, eventID, studentID)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.FindAttendance -> %w", err)
	}

	return attendanceDaoToDomain(found), nil
}

func (r *EventRepository) FindAttendanceByEvent(ctx context.Context, eventID uint) ([]domain.Attendance, error) {
	found, err := r.dao.FindAttendanceByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAttendanceByEvent -> %w", err)
	}

	attendance := make([]domain.Attendance, len(found))
	for i, record := range found {
		attendance[i] = attendanceDaoToDomain(record)
	}

	return attendance, nil
}

func (r *EventRepository) CheckOut(ctx context.Context, eventID, studentID uint, at time.Time) error {
	if err := r.dao.CheckOutAttendance(ctx, eventID, studentID, at); err != nil {
		return fmt.Errorf("r.dao.CheckOutAttendance -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.InsertFeedback(ctx, dao.Feedback{
		EventID:     feedback.EventID,
		StudentID:   feedback.StudentID,
		Rating:      feedback.Rating,
		Comments:    feedback.Comments,
		SubmittedAt: feedback.SubmittedAt,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.InsertFeedback -> %w", err)
	}

	return feedbackDaoToDomain(created), nil
}

func (r *EventRepository) FindFeedbackByEvent(ctx context.Context, eventID uint) ([]domain.Feedback, error) {
	found, err := r.dao.FindFeedbackByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFeedbackByEvent -> %w", err)
	}

	feedback := make([]domain.Feedback, len(found))
	for i, record := range found {
		feedback[i] = feedbackDaoToDomain(record)
	}

	return feedback, nil
}

func eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                    e.ID,
		EventCode:             e.EventCode,
		CollegeID:             e.CollegeID,
		Title:                 e.Title,
		Description:           e.Description,
		EventType:             e.EventType,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		Location:              e.Location,
		MaxParticipants:       e.MaxParticipants,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationDeadline:  e.RegistrationDeadline,
		Status:                string(e.Status),
		CreatedBy:             e.CreatedBy,
	}
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                    e.ID,
		EventCode:             e.EventCode,
		CollegeID:             e.CollegeID,
		CollegeName:           e.College.Name,
		CollegeCode:           e.College.Code,
		Title:                 e.Title,
		Description:           e.Description,
		EventType:             e.EventType,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		Location:              e.Location,
		MaxParticipants:       e.MaxParticipants,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationDeadline:  e.RegistrationDeadline,
		Status:                domain.EventStatus(e.Status),
		CreatedBy:             e.CreatedBy,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func registrationDaoToDomain(r dao.EventRegistration) domain.EventRegistration {
	reg := domain.EventRegistration{
		ID:               r.ID,
		EventID:          r.EventID,
		StudentID:        r.StudentID,
		RegistrationDate: r.RegistrationDate,
		Status:           domain.RegistrationStatus(r.Status),
		EventTitle:       r.Event.Title,
		EventCode:        r.Event.EventCode,
		StudentCode:      r.Student.StudentID,
	}
	if r.Student.ID != 0 {
		reg.StudentName = r.Student.FirstName + " " + r.Student.LastName
	}

	return reg
}

func registrationsDaoToDomain(found []dao.EventRegistration) []domain.EventRegistration {
	registrations := make([]domain.EventRegistration, len(found))
	for i, registration := range found {
		registrations[i] = registrationDaoToDomain(registration)
	}

	return registrations
}

func attendanceDaoToDomain(a dao.Attendance) domain.Attendance {
	att := domain.Attendance{
		ID:           a.ID,
		EventID:      a.EventID,
		StudentID:    a.StudentID,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Status:       domain.AttendanceStatus(a.Status),
		MarkedBy:     a.MarkedBy,
		Notes:        a.Notes,
		StudentCode:  a.Student.StudentID,
	}
	if a.Student.ID != 0 {
		att.StudentName = a.Student.FirstName + " " + a.Student.LastName
	}

	return att
}

func feedbackDaoToDomain(f dao.Feedback) domain.Feedback {
	fb := domain.Feedback{
		ID:          f.ID,
		EventID:     f.EventID,
		StudentID:   f.StudentID,
		Rating:      f.Rating,
		Comments:    f.Comments,
		SubmittedAt: f.SubmittedAt,
		EventTitle:  f.Event.Title,
		EventCode:   f.Event.EventCode,
	}
	if f.Student.ID != 0 {
		fb.StudentName = f.Student.FirstName + " " + f.Student.LastName
	}

	return fb
}
