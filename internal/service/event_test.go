package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-events-api/internal/domain"
)

type regKey struct {
	eventID   uint
	studentID uint
}

// fakeEventRepo mirrors the storage-layer eligibility checks in memory so
// the service rules can be exercised without a database.
type fakeEventRepo struct {
	events        map[uint]domain.Event
	registrations map[regKey]domain.EventRegistration
	attendance    map[regKey]domain.Attendance
	feedback      map[regKey]domain.Feedback

	nextID uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:        make(map[uint]domain.Event),
		registrations: make(map[regKey]domain.EventRegistration),
		attendance:    make(map[regKey]domain.Attendance),
		feedback:      make(map[regKey]domain.Feedback),
	}
}

func (f *fakeEventRepo) addEvent(event domain.Event) domain.Event {
	if event.ID == 0 {
		f.nextID++
		event.ID = f.nextID
	}
	f.events[event.ID] = event

	return event
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	return f.addEvent(event), nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context, _ domain.EventFilter) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		events = append(events, e)
	}

	return events, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := f.events[event.ID]; !ok {
		return domain.Event{}, ErrEventNotFound
	}
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id uint, from, to domain.EventStatus) error {
	event, ok := f.events[id]
	if !ok {
		return ErrEventNotFound
	}
	if event.Status != from {
		return domain.ErrEventNotActive
	}
	event.Status = to
	f.events[id] = event

	return nil
}

func (f *fakeEventRepo) NextEventCodeSequence(_ context.Context, _ uint, _ string, _ time.Time) (int, error) {
	return len(f.events) + 1, nil
}

func (f *fakeEventRepo) CountActiveRegistrations(_ context.Context, eventID uint) (int, error) {
	count := 0
	for key, reg := range f.registrations {
		if key.eventID == eventID && reg.Status == domain.RegistrationStatusRegistered {
			count++
		}
	}

	return count, nil
}

func (f *fakeEventRepo) Register(ctx context.Context, eventID, studentID uint, now time.Time) (domain.EventRegistration, error) {
	event, ok := f.events[eventID]
	if !ok {
		return domain.EventRegistration{}, ErrEventNotFound
	}

	if err := event.CheckRegistrationOpen(now); err != nil {
		return domain.EventRegistration{}, err
	}

	key := regKey{eventID, studentID}
	if existing, ok := f.registrations[key]; ok && existing.Status == domain.RegistrationStatusRegistered {
		return domain.EventRegistration{}, domain.ErrAlreadyRegistered
	}

	count, _ := f.CountActiveRegistrations(ctx, eventID)
	if event.IsFull(count) {
		return domain.EventRegistration{}, domain.ErrEventFull
	}

	registration := domain.EventRegistration{
		ID:               uint(len(f.registrations) + 1),
		EventID:          eventID,
		StudentID:        studentID,
		RegistrationDate: now,
		Status:           domain.RegistrationStatusRegistered,
	}
	f.registrations[key] = registration

	return registration, nil
}

func (f *fakeEventRepo) CancelRegistration(_ context.Context, eventID, studentID uint) error {
	key := regKey{eventID, studentID}
	registration, ok := f.registrations[key]
	if !ok || registration.Status != domain.RegistrationStatusRegistered {
		return domain.ErrNotRegistered
	}
	registration.Status = domain.RegistrationStatusCancelled
	f.registrations[key] = registration

	return nil
}

func (f *fakeEventRepo) FindRegistration(_ context.Context, eventID, studentID uint) (domain.EventRegistration, error) {
	registration, ok := f.registrations[regKey{eventID, studentID}]
	if !ok {
		return domain.EventRegistration{}, domain.ErrNotRegistered
	}

	return registration, nil
}

func (f *fakeEventRepo) FindRegistrationsByEvent(_ context.Context, eventID uint) ([]domain.EventRegistration, error) {
	var registrations []domain.EventRegistration
	for key, reg := range f.registrations {
		if key.eventID == eventID {
			registrations = append(registrations, reg)
		}
	}

	return registrations, nil
}

func (f *fakeEventRepo) FindRegistrationsByStudent(_ context.Context, studentID uint) ([]domain.EventRegistration, error) {
	var registrations []domain.EventRegistration
	for key, reg := range f.registrations {
		if key.studentID == studentID {
			registrations = append(registrations, reg)
		}
	}

	return registrations, nil
}

func (f *fakeEventRepo) UpsertAttendance(_ context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	key := regKey{attendance.EventID, attendance.StudentID}
	if existing, ok := f.attendance[key]; ok {
		attendance.ID = existing.ID
		attendance.CheckInTime = existing.CheckInTime
	} else {
		attendance.ID = uint(len(f.attendance) + 1)
	}
	f.attendance[key] = attendance

	return attendance, nil
}

func (f *fakeEventRepo) FindAttendance(_ context.Context, eventID, studentID uint) (domain.Attendance, error) {
	attendance, ok := f.attendance[regKey{eventID, studentID}]
	if !ok {
		return domain.Attendance{}, domain.ErrAttendanceNotFound
	}

	return attendance, nil
}

func (f *fakeEventRepo) FindAttendanceByEvent(_ context.Context, eventID uint) ([]domain.Attendance, error) {
	var records []domain.Attendance
	for key, a := range f.attendance {
		if key.eventID == eventID {
			records = append(records, a)
		}
	}

	return records, nil
}

func (f *fakeEventRepo) CheckOut(_ context.Context, eventID, studentID uint, at time.Time) error {
	key := regKey{eventID, studentID}
	attendance, ok := f.attendance[key]
	if !ok {
		return domain.ErrAttendanceNotFound
	}
	attendance.CheckOutTime = &at
	f.attendance[key] = attendance

	return nil
}

func (f *fakeEventRepo) CreateFeedback(_ context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	key := regKey{feedback.EventID, feedback.StudentID}
	if _, ok := f.feedback[key]; ok {
		return domain.Feedback{}, domain.ErrFeedbackExists
	}
	feedback.ID = uint(len(f.feedback) + 1)
	f.feedback[key] = feedback

	return feedback, nil
}

func (f *fakeEventRepo) FindFeedbackByEvent(_ context.Context, eventID uint) ([]domain.Feedback, error) {
	var records []domain.Feedback
	for key, fb := range f.feedback {
		if key.eventID == eventID {
			records = append(records, fb)
		}
	}

	return records, nil
}

type fakeCollegeRepo struct {
	colleges map[uint]domain.College
}

func (f *fakeCollegeRepo) Create(_ context.Context, college domain.College) (domain.College, error) {
	f.colleges[college.ID] = college

	return college, nil
}

func (f *fakeCollegeRepo) FindByID(_ context.Context, id uint) (domain.College, error) {
	college, ok := f.colleges[id]
	if !ok {
		return domain.College{}, ErrCollegeNotFound
	}

	return college, nil
}

func (f *fakeCollegeRepo) FindByCode(_ context.Context, code string) (domain.College, error) {
	for _, c := range f.colleges {
		if c.Code == code {
			return c, nil
		}
	}

	return domain.College{}, ErrCollegeNotFound
}

func (f *fakeCollegeRepo) FindAll(_ context.Context) ([]domain.College, error) {
	colleges := make([]domain.College, 0, len(f.colleges))
	for _, c := range f.colleges {
		colleges = append(colleges, c)
	}

	return colleges, nil
}

func (f *fakeCollegeRepo) Update(_ context.Context, college domain.College) (domain.College, error) {
	if _, ok := f.colleges[college.ID]; !ok {
		return domain.College{}, ErrCollegeNotFound
	}
	f.colleges[college.ID] = college

	return college, nil
}

type fakeStudentRepo struct {
	students map[uint]domain.Student
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id uint) (domain.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return domain.Student{}, ErrStudentNotFound
	}

	return student, nil
}

func intPtr(n int) *int {
	return &n
}

func newEventServiceFixture() (*EventService, *fakeEventRepo) {
	repo := newFakeEventRepo()
	collegeRepo := &fakeCollegeRepo{colleges: map[uint]domain.College{
		1: {ID: 1, Code: "TECH", Name: "Institute of Technology"},
	}}
	studentRepo := &fakeStudentRepo{students: map[uint]domain.Student{
		10: {ID: 10, StudentID: "STU-010", CollegeID: 1},
		11: {ID: 11, StudentID: "STU-011", CollegeID: 1},
		12: {ID: 12, StudentID: "STU-012", CollegeID: 1},
	}}

	svc := NewEventService(repo, collegeRepo, studentRepo)

	return svc, repo
}

func activeEvent(repo *fakeEventRepo, maxParticipants *int) domain.Event {
	return repo.addEvent(domain.Event{
		Status:          domain.EventStatusActive,
		CollegeID:       1,
		Title:           "Spring Hackathon",
		EventType:       "hackathon",
		StartDate:       time.Now().Add(48 * time.Hour),
		EndDate:         time.Now().Add(72 * time.Hour),
		MaxParticipants: maxParticipants,
	})
}

func TestCreateEvent(t *testing.T) {
	svc, _ := newEventServiceFixture()
	ctx := context.Background()

	t.Run("generates event code", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		event, err := svc.CreateEvent(ctx, domain.Event{
			CollegeID: 1,
			Title:     "Spring Hackathon",
			EventType: "hackathon",
			StartDate: start,
			EndDate:   start.Add(8 * time.Hour),
		})

		require.NoError(t, err)
		assert.Equal(t, "TECH-HACK-20260301-001", event.EventCode)
		assert.Equal(t, domain.EventStatusActive, event.Status)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		_, err := svc.CreateEvent(ctx, domain.Event{
			CollegeID: 1,
			Title:     "Backwards",
			EventType: "workshop",
			StartDate: start,
			EndDate:   start.Add(-time.Hour),
		})

		assert.ErrorIs(t, err, ErrInvalidEventDates)
	})

	t.Run("rejects unknown college", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		_, err := svc.CreateEvent(ctx, domain.Event{
			CollegeID: 99,
			Title:     "Orphan",
			EventType: "workshop",
			StartDate: start,
			EndDate:   start.Add(time.Hour),
		})

		assert.ErrorIs(t, err, ErrCollegeNotFound)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)

		registration, err := svc.Register(ctx, event.ID, 10)

		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusRegistered, registration.Status)
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)

		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)

		_, err = svc.Register(ctx, event.ID, 10)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("capacity enforced", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, intPtr(2))

		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)
		_, err = svc.Register(ctx, event.ID, 11)
		require.NoError(t, err)

		_, err = svc.Register(ctx, event.ID, 12)
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("cancelling frees the seat", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, intPtr(1))

		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)

		require.NoError(t, svc.Unregister(ctx, event.ID, 10))

		_, err = svc.Register(ctx, event.ID, 11)
		assert.NoError(t, err)
	})

	t.Run("ended event rejected", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		require.NoError(t, svc.EndEvent(ctx, event.ID))

		_, err := svc.Register(ctx, event.ID, 10)
		assert.ErrorIs(t, err, ErrEventClosed)
	})

	t.Run("unknown student rejected", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)

		_, err := svc.Register(ctx, event.ID, 404)
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})
}

func TestEventTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("end is irreversible", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)

		require.NoError(t, svc.EndEvent(ctx, event.ID))

		assert.ErrorIs(t, svc.EndEvent(ctx, event.ID), ErrEventNotActive)
		assert.ErrorIs(t, svc.CancelEvent(ctx, event.ID), ErrEventNotActive)
	})

	t.Run("cancel is irreversible", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)

		require.NoError(t, svc.CancelEvent(ctx, event.ID))

		assert.ErrorIs(t, svc.EndEvent(ctx, event.ID), ErrEventNotActive)
	})

	t.Run("missing event", func(t *testing.T) {
		svc, _ := newEventServiceFixture()

		assert.ErrorIs(t, svc.EndEvent(ctx, 404), ErrEventNotFound)
	})
}

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("requires registration", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)

		_, err := svc.MarkAttendance(ctx, event.ID, 10, domain.AttendancePresent, "", 1)
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("requires active event", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)
		require.NoError(t, svc.EndEvent(ctx, event.ID))

		_, err = svc.MarkAttendance(ctx, event.ID, 10, domain.AttendancePresent, "", 1)
		assert.ErrorIs(t, err, ErrEventNotActive)
	})

	t.Run("idempotent remarking", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)

		first, err := svc.MarkAttendance(ctx, event.ID, 10, domain.AttendanceLate, "arrived late", 1)
		require.NoError(t, err)

		second, err := svc.MarkAttendance(ctx, event.ID, 10, domain.AttendancePresent, "", 2)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, domain.AttendancePresent, second.Status)
		assert.Equal(t, uint(2), second.MarkedBy)

		records, err := svc.ListAttendance(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("cancelled registration rejected", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)
		require.NoError(t, svc.Unregister(ctx, event.ID, 10))

		_, err = svc.MarkAttendance(ctx, event.ID, 10, domain.AttendancePresent, "", 1)
		assert.ErrorIs(t, err, ErrNotRegistered)
	})
}

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()

	markPresent := func(t *testing.T, svc *EventService, eventID, studentID uint) {
		t.Helper()
		_, err := svc.Register(ctx, eventID, studentID)
		require.NoError(t, err)
		_, err = svc.MarkAttendance(ctx, eventID, studentID, domain.AttendancePresent, "", 1)
		require.NoError(t, err)
	}

	t.Run("happy path", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		markPresent(t, svc, event.ID, 10)

		feedback, err := svc.SubmitFeedback(ctx, event.ID, 10, 5, "great event")

		require.NoError(t, err)
		assert.Equal(t, 5, feedback.Rating)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)

		_, err := svc.SubmitFeedback(ctx, event.ID, 10, 0, "")
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = svc.SubmitFeedback(ctx, event.ID, 10, 6, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("requires attendance", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)

		_, err = svc.SubmitFeedback(ctx, event.ID, 10, 4, "")
		assert.ErrorIs(t, err, ErrAttendanceRequired)
	})

	t.Run("requires present status", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		_, err := svc.Register(ctx, event.ID, 10)
		require.NoError(t, err)
		_, err = svc.MarkAttendance(ctx, event.ID, 10, domain.AttendanceAbsent, "", 1)
		require.NoError(t, err)

		_, err = svc.SubmitFeedback(ctx, event.ID, 10, 4, "")
		assert.ErrorIs(t, err, ErrAttendanceRequired)
	})

	t.Run("one feedback per event", func(t *testing.T) {
		svc, repo := newEventServiceFixture()
		event := activeEvent(repo, nil)
		markPresent(t, svc, event.ID, 10)

		_, err := svc.SubmitFeedback(ctx, event.ID, 10, 4, "")
		require.NoError(t, err)

		_, err = svc.SubmitFeedback(ctx, event.ID, 10, 5, "")
		assert.ErrorIs(t, err, ErrFeedbackExists)
	})
}
