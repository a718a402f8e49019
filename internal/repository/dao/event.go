package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campushq/campus-events-api/internal/domain"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrEventCodeExists = errors.New("event code already exists")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	EventCode string  `gorm:"unique;not null"`
	CollegeID uint    `gorm:"not null;index:idx_events_college_start"`
	College   College `gorm:"foreignKey:CollegeID"`

	Title       string `gorm:"not null"`
	Description string
	EventType   string    `gorm:"not null;index"`
	StartDate   time.Time `gorm:"not null;index:idx_events_college_start"`
	EndDate     time.Time `gorm:"not null"`
	Location    string

	MaxParticipants       *int
	RegistrationStartDate *time.Time
	RegistrationDeadline  *time.Time

	Status    string `gorm:"not null;default:active;index"`
	CreatedBy uint

	Registrations []EventRegistration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Attendance    []Attendance        `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Feedback      []Feedback          `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventRegistration struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint    `gorm:"not null;uniqueIndex:idx_registrations_event_student"`
	Event     Event   `gorm:"foreignKey:EventID"`
	StudentID uint    `gorm:"not null;uniqueIndex:idx_registrations_event_student;index"`
	Student   Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`

	RegistrationDate time.Time `gorm:"not null"`
	Status           string    `gorm:"not null;default:registered;index"`
}

type Attendance struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint    `gorm:"not null;uniqueIndex:idx_attendance_event_student"`
	Event     Event   `gorm:"foreignKey:EventID"`
	StudentID uint    `gorm:"not null;uniqueIndex:idx_attendance_event_student;index"`
	Student   Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`

	CheckInTime  time.Time `gorm:"not null"`
	CheckOutTime *time.Time
	Status       string `gorm:"column:attendance_status;not null;default:present;index"`
	MarkedBy     uint
	Notes        string
}

type Feedback struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint    `gorm:"not null;uniqueIndex:idx_feedback_event_student"`
	Event     Event   `gorm:"foreignKey:EventID"`
	StudentID uint    `gorm:"not null;uniqueIndex:idx_feedback_event_student;index"`
	Student   Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`

	Rating      int `gorm:"not null;check:rating >= 1 AND rating <= 5;index"`
	Comments    string
	SubmittedAt time.Time `gorm:"not null;index"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

type EventFilter struct {
	CollegeID uint
	Status    string
	EventType string
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Event{}, ErrEventCodeExists
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("College").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context, filter EventFilter) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Preload("College").Order("start_date DESC")
	if filter.CollegeID != 0 {
		query = query.Where("college_id = ?", filter.CollegeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}

	result := query.Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{ID: event.ID}).Updates(map[string]interface{}{
		"title":                   event.Title,
		"description":             event.Description,
		"event_type":              event.EventType,
		"start_date":              event.StartDate,
		"end_date":                event.EndDate,
		"location":                event.Location,
		"max_participants":        event.MaxParticipants,
		"registration_start_date": event.RegistrationStartDate,
		"registration_deadline":   event.RegistrationDeadline,
	})
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

// UpdateStatus performs the active -> ended/cancelled transition. The
// WHERE on the current status makes the transition a compare-and-set, so
// a concurrent transition loses cleanly instead of resurrecting the event.
func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, from, to string) error {
	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrEventNotFound
		}

		return domain.ErrEventNotActive
	}

	return nil
}

// CountSameDay returns how many events the college already has of the
// given type on the given day. Feeds event-code sequence numbers.
func (d *EventDAO) CountSameDay(ctx context.Context, collegeID uint, eventType string, dayStart, dayEnd time.Time) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("college_id = ? AND event_type = ? AND start_date >= ? AND start_date < ?",
			collegeID, eventType, dayStart, dayEnd).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountActiveRegistrations(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&EventRegistration{}).
		Where("event_id = ? AND status = ?", eventID, string(domain.RegistrationStatusRegistered)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// RegisterStudent runs the whole eligibility check and insert in one
// transaction with the event row locked, so two concurrent registrations
// for the last seat serialize and the loser sees the updated count. The
// unique index on (event_id, student_id) backstops the duplicate check.
func (d *EventDAO) RegisterStudent(ctx context.Context, eventID, studentID uint, now time.Time) (EventRegistration, error) {
	var registration EventRegistration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		if err := eventChecks(event).CheckRegistrationOpen(now); err != nil {
			return err
		}

		var existing EventRegistration
		err := tx.First(&existing, "event_id = ? AND student_id = ?", eventID, studentID).Error
		switch {
		case err == nil:
			if existing.Status == string(domain.RegistrationStatusRegistered) {
				return domain.ErrAlreadyRegistered
			}
			// A cancelled registration is re-activated, still subject to capacity.
			if err := d.checkCapacity(tx, eventChecks(event), eventID); err != nil {
				return err
			}
			existing.Status = string(domain.RegistrationStatusRegistered)
			existing.RegistrationDate = now
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			registration = existing

			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Fall through to insert.
		default:
			return err
		}

		if err := d.checkCapacity(tx, eventChecks(event), eventID); err != nil {
			return err
		}

		registration = EventRegistration{
			EventID:          eventID,
			StudentID:        studentID,
			RegistrationDate: now,
			Status:           string(domain.RegistrationStatusRegistered),
		}
		if err := tx.Create(&registration).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrAlreadyRegistered
			}

			return err
		}

		return nil
	})
	if err != nil {
		return EventRegistration{}, err
	}

	return registration, nil
}

func (d *EventDAO) checkCapacity(tx *gorm.DB, event domain.Event, eventID uint) error {
	var count int64
	if err := tx.Model(&EventRegistration{}).
		Where("event_id = ? AND status = ?", eventID, string(domain.RegistrationStatusRegistered)).
		Count(&count).Error; err != nil {
		return err
	}
	if event.IsFull(int(count)) {
		return domain.ErrEventFull
	}

	return nil
}

// eventChecks lifts the fields the eligibility rules look at into the
// domain type so the pure checks stay in one place.
func eventChecks(e Event) domain.Event {
	return domain.Event{
		Status:                domain.EventStatus(e.Status),
		StartDate:             e.StartDate,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationDeadline:  e.RegistrationDeadline,
		MaxParticipants:       e.MaxParticipants,
	}
}

func (d *EventDAO) CancelRegistration(ctx context.Context, eventID, studentID uint) error {
	result := d.db.WithContext(ctx).
		Model(&EventRegistration{}).
		Where("event_id = ? AND student_id = ? AND status = ?",
			eventID, studentID, string(domain.RegistrationStatusRegistered)).
		Update("status", string(domain.RegistrationStatusCancelled))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotRegistered
	}

	return nil
}

func (d *EventDAO) FindRegistration(ctx context.Context, eventID, studentID uint) (EventRegistration, error) {
	var registration EventRegistration

	result := d.db.WithContext(ctx).
		First(&registration, "event_id = ? AND student_id = ?", eventID, studentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventRegistration{}, domain.ErrNotRegistered
		}

		return EventRegistration{}, result.Error
	}

	return registration, nil
}

func (d *EventDAO) FindRegistrationsByEvent(ctx context.Context, eventID uint) ([]EventRegistration, error) {
	var registrations []EventRegistration

	result := d.db.WithContext(ctx).
		Preload("Student").
		Preload("Event").
		Where("event_id = ?", eventID).
		Order("registration_date DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *EventDAO) FindRegistrationsByStudent(ctx context.Context, studentID uint) ([]EventRegistration, error) {
	var registrations []EventRegistration

	result := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.College").
		Where("student_id = ?", studentID).
		Order("registration_date DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

// UpsertAttendance creates the attendance row for the pair or, when one
// already exists, overwrites status, notes and the marking admin.
func (d *EventDAO) UpsertAttendance(ctx context.Context, attendance Attendance) (Attendance, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Attendance
		err := tx.First(&existing, "event_id = ? AND student_id = ?",
			attendance.EventID, attendance.StudentID).Error
		switch {
		case err == nil:
			existing.Status = attendance.Status
			existing.Notes = attendance.Notes
			existing.MarkedBy = attendance.MarkedBy
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			attendance = existing

			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&attendance).Error
		default:
			return err
		}
	})
	if err != nil {
		return Attendance{}, err
	}

	return attendance, nil
}

func (d *EventDAO) FindAttendance(ctx context.Context, eventID, studentID uint) (Attendance, error) {
	var attendance Attendance

	result := d.db.WithContext(ctx).
		First(&attendance, "event_id = ? AND student_id = ?", eventID, studentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Attendance{}, domain.ErrAttendanceNotFound
		}

		return Attendance{}, result.Error
	}

	return attendance, nil
}

func (d *EventDAO) FindAttendanceByEvent(ctx context.Context, eventID uint) ([]Attendance, error) {
	var attendance []Attendance

	result := d.db.WithContext(ctx).
		Preload("Student").
		Where("event_id = ?", eventID).
		Order("check_in_time DESC").
		Find(&attendance)
	if result.Error != nil {
		return nil, result.Error
	}

	return attendance, nil
}

func (d *EventDAO) CheckOutAttendance(ctx context.Context, eventID, studentID uint, at time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Update("check_out_time", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAttendanceNotFound
	}

	return nil
}

func (d *EventDAO) InsertFeedback(ctx context.Context, feedback Feedback) (Feedback, error) {
	result := d.db.WithContext(ctx).Create(&feedback)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Feedback{}, domain.ErrFeedbackExists
		}

		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *EventDAO) FindFeedbackByEvent(ctx context.Context, eventID uint) ([]Feedback, error) {
	var feedback []Feedback

	result := d.db.WithContext(ctx).
		Preload("Student").
		Where("event_id = ?", eventID).
		Order("submitted_at DESC").
		Find(&feedback)
	if result.Error != nil {
		return nil, result.Error
	}

	return feedback, nil
}
