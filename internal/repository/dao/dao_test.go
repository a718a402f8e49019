package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campushq/campus-events-api/internal/domain"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	// Spinning up postgres is too slow for -short runs.
	for _, arg := range os.Args {
		if arg == "-test.short=true" {
			os.Exit(m.Run())
		}
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("dockertest.NewPool -> %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=campus_events_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions -> %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%s user=test password=test dbname=campus_events_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}
		testDB = db

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("pool.Retry -> %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("dao.InitTables -> %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() || testDB == nil {
		t.Skip("skipping database test in short mode")
	}
}

func seedCollege(t *testing.T, code string) College {
	t.Helper()

	college, err := NewCollegeDAO(testDB).Insert(context.Background(), College{
		Code:         code,
		Name:         code + " College",
		ContactEmail: code + "@example.com",
	})
	require.NoError(t, err)

	return college
}

func seedStudent(t *testing.T, collegeID uint, studentID string) Student {
	t.Helper()

	student, err := NewStudentDAO(testDB).Insert(context.Background(), Student{
		StudentID: studentID,
		CollegeID: collegeID,
		FirstName: "Test",
		LastName:  "Student",
		Email:     fmt.Sprintf("%v-%v@example.com", collegeID, studentID),
	})
	require.NoError(t, err)

	return student
}

func seedEvent(t *testing.T, collegeID uint, code string, maxParticipants *int) Event {
	t.Helper()

	start := time.Now().Add(48 * time.Hour)

	event, err := NewEventDAO(testDB).Insert(context.Background(), Event{
		EventCode:       code,
		CollegeID:       collegeID,
		Title:           "Test Event " + code,
		EventType:       "workshop",
		StartDate:       start,
		EndDate:         start.Add(4 * time.Hour),
		MaxParticipants: maxParticipants,
		Status:          string(domain.EventStatusActive),
	})
	require.NoError(t, err)

	return event
}

func TestCollegeDAOUniqueCode(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	seedCollege(t, "UNIQ")

	_, err := NewCollegeDAO(testDB).Insert(ctx, College{
		Code:         "UNIQ",
		Name:         "Duplicate",
		ContactEmail: "dup@example.com",
	})

	assert.ErrorIs(t, err, ErrCollegeCodeExists)
}

func TestStudentDAOUniqueness(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	collegeA := seedCollege(t, "STUA")
	collegeB := seedCollege(t, "STUB")
	seedStudent(t, collegeA.ID, "S-001")

	t.Run("same student id within a college rejected", func(t *testing.T) {
		_, err := NewStudentDAO(testDB).Insert(ctx, Student{
			StudentID: "S-001",
			CollegeID: collegeA.ID,
			FirstName: "Other",
			LastName:  "Student",
			Email:     "other@example.com",
		})
		assert.ErrorIs(t, err, ErrStudentIDExists)
	})

	t.Run("same student id in another college allowed", func(t *testing.T) {
		_, err := NewStudentDAO(testDB).Insert(ctx, Student{
			StudentID: "S-001",
			CollegeID: collegeB.ID,
			FirstName: "Other",
			LastName:  "College",
			Email:     "othercollege@example.com",
		})
		assert.NoError(t, err)
	})
}

func TestRegisterStudent(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	now := time.Now()

	college := seedCollege(t, "REG")
	eventDAO := NewEventDAO(testDB)

	t.Run("duplicate rejected", func(t *testing.T) {
		event := seedEvent(t, college.ID, "REG-DUP-001", nil)
		student := seedStudent(t, college.ID, "R-001")

		_, err := eventDAO.RegisterStudent(ctx, event.ID, student.ID, now)
		require.NoError(t, err)

		_, err = eventDAO.RegisterStudent(ctx, event.ID, student.ID, now)
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("capacity enforced", func(t *testing.T) {
		one := 1
		event := seedEvent(t, college.ID, "REG-CAP-001", &one)
		first := seedStudent(t, college.ID, "R-002")
		second := seedStudent(t, college.ID, "R-003")

		_, err := eventDAO.RegisterStudent(ctx, event.ID, first.ID, now)
		require.NoError(t, err)

		_, err = eventDAO.RegisterStudent(ctx, event.ID, second.ID, now)
		assert.ErrorIs(t, err, domain.ErrEventFull)
	})

	t.Run("cancelled registration reactivated", func(t *testing.T) {
		event := seedEvent(t, college.ID, "REG-REACT-001", nil)
		student := seedStudent(t, college.ID, "R-004")

		first, err := eventDAO.RegisterStudent(ctx, event.ID, student.ID, now)
		require.NoError(t, err)

		require.NoError(t, eventDAO.CancelRegistration(ctx, event.ID, student.ID))

		again, err := eventDAO.RegisterStudent(ctx, event.ID, student.ID, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, string(domain.RegistrationStatusRegistered), again.Status)
	})

	t.Run("missing event", func(t *testing.T) {
		student := seedStudent(t, college.ID, "R-005")

		_, err := eventDAO.RegisterStudent(ctx, 999999, student.ID, now)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestUpdateStatusCompareAndSet(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	college := seedCollege(t, "STAT")
	event := seedEvent(t, college.ID, "STAT-001", nil)
	eventDAO := NewEventDAO(testDB)

	require.NoError(t, eventDAO.UpdateStatus(ctx, event.ID,
		string(domain.EventStatusActive), string(domain.EventStatusEnded)))

	err := eventDAO.UpdateStatus(ctx, event.ID,
		string(domain.EventStatusActive), string(domain.EventStatusCancelled))
	assert.ErrorIs(t, err, domain.ErrEventNotActive)

	err = eventDAO.UpdateStatus(ctx, 999999,
		string(domain.EventStatusActive), string(domain.EventStatusEnded))
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdateEventChangesType(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	college := seedCollege(t, "UPD")
	event := seedEvent(t, college.ID, "UPD-001", nil)
	eventDAO := NewEventDAO(testDB)

	event.Title = "Renamed Event"
	event.EventType = "seminar"

	updated, err := eventDAO.Update(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Event", updated.Title)
	assert.Equal(t, "seminar", updated.EventType)
}

func TestUpsertAttendance(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	college := seedCollege(t, "ATT")
	event := seedEvent(t, college.ID, "ATT-001", nil)
	student := seedStudent(t, college.ID, "A-001")
	eventDAO := NewEventDAO(testDB)

	first, err := eventDAO.UpsertAttendance(ctx, Attendance{
		EventID:     event.ID,
		StudentID:   student.ID,
		CheckInTime: time.Now(),
		Status:      string(domain.AttendanceLate),
		MarkedBy:    1,
		Notes:       "arrived late",
	})
	require.NoError(t, err)

	second, err := eventDAO.UpsertAttendance(ctx, Attendance{
		EventID:     event.ID,
		StudentID:   student.ID,
		CheckInTime: time.Now(),
		Status:      string(domain.AttendancePresent),
		MarkedBy:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, string(domain.AttendancePresent), second.Status)
	assert.Equal(t, uint(2), second.MarkedBy)

	records, err := eventDAO.FindAttendanceByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestInsertFeedbackUnique(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	college := seedCollege(t, "FDB")
	event := seedEvent(t, college.ID, "FDB-001", nil)
	student := seedStudent(t, college.ID, "F-001")
	eventDAO := NewEventDAO(testDB)

	_, err := eventDAO.InsertFeedback(ctx, Feedback{
		EventID:     event.ID,
		StudentID:   student.ID,
		Rating:      5,
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = eventDAO.InsertFeedback(ctx, Feedback{
		EventID:     event.ID,
		StudentID:   student.ID,
		Rating:      3,
		SubmittedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrFeedbackExists)
}

func TestAnalyticsDAO(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	now := time.Now()

	college := seedCollege(t, "ANA")
	// eventA gets three registrations and two ratings of 2, eventB one
	// registration and a single 5.
	eventA := seedEvent(t, college.ID, "ANA-POP-001", nil)
	eventB := seedEvent(t, college.ID, "ANA-POP-002", nil)

	students := make([]Student, 4)
	for i := range students {
		students[i] = seedStudent(t, college.ID, fmt.Sprintf("AN-%03d", i+1))
	}

	eventDAO := NewEventDAO(testDB)
	for _, student := range students[:3] {
		_, err := eventDAO.RegisterStudent(ctx, eventA.ID, student.ID, now)
		require.NoError(t, err)
	}
	_, err := eventDAO.RegisterStudent(ctx, eventB.ID, students[3].ID, now)
	require.NoError(t, err)

	seedFeedback := func(eventID, studentID uint, rating int) {
		t.Helper()

		_, err := eventDAO.InsertFeedback(ctx, Feedback{
			EventID:     eventID,
			StudentID:   studentID,
			Rating:      rating,
			SubmittedAt: now,
		})
		require.NoError(t, err)
	}
	seedFeedback(eventA.ID, students[0].ID, 2)
	seedFeedback(eventA.ID, students[1].ID, 2)
	seedFeedback(eventB.ID, students[3].ID, 5)

	analyticsDAO := NewAnalyticsDAO(testDB)
	filter := FeedbackFilter{CollegeID: college.ID}

	t.Run("rating histogram", func(t *testing.T) {
		counts, err := analyticsDAO.RatingCounts(ctx, filter)
		require.NoError(t, err)

		assert.Equal(t, int64(2), counts[2])
		assert.Equal(t, int64(1), counts[5])
		assert.Zero(t, counts[3])
	})

	t.Run("min reviews excludes small samples", func(t *testing.T) {
		rows, err := analyticsDAO.TopRatedEvents(ctx, filter, 2, 10)
		require.NoError(t, err)

		require.Len(t, rows, 1)
		assert.Equal(t, eventA.ID, rows[0].EventID)
		assert.InDelta(t, 2.0, rows[0].AverageRating, 0.001)
	})

	t.Run("college average not weighted by registrations", func(t *testing.T) {
		rows, err := analyticsDAO.TopColleges(ctx, 100)
		require.NoError(t, err)

		var found *CollegeActivityRow
		for i := range rows {
			if rows[i].CollegeID == college.ID {
				found = &rows[i]

				break
			}
		}
		require.NotNil(t, found)

		assert.Equal(t, int64(2), found.EventCount)
		assert.Equal(t, int64(4), found.RegistrationCount)
		// Mean of {2, 2, 5}; the skewed registration counts must not pull
		// it toward eventA's ratings.
		assert.InDelta(t, 3.0, found.AverageRating, 0.001)
	})

	t.Run("event popularity counts registrations per event", func(t *testing.T) {
		rows, err := analyticsDAO.EventPopularity(ctx, ReportFilter{CollegeID: college.ID}, 10)
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, eventA.ID, rows[0].EventID)
		assert.Equal(t, int64(3), rows[0].TotalRegistrations)
		assert.InDelta(t, 2.0, rows[0].AverageRating, 0.001)
		assert.Equal(t, eventB.ID, rows[1].EventID)
		assert.Equal(t, int64(1), rows[1].TotalRegistrations)
	})
}
