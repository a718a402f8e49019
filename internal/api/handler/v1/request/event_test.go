package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/campus-events-api/internal/domain"
)

func TestCreateEventRequestValidate(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	valid := CreateEventRequest{
		CollegeID: 1,
		Title:     "Spring Hackathon",
		EventType: "hackathon",
		StartDate: start,
		EndDate:   start.Add(8 * time.Hour),
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown event type", func(t *testing.T) {
		req := valid
		req.EventType = "rave"
		assert.Error(t, req.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		req := valid
		req.EndDate = start.Add(-time.Hour)
		assert.ErrorIs(t, req.Validate(), errEndBeforeStart)
	})

	t.Run("zero capacity", func(t *testing.T) {
		zero := 0
		req := valid
		req.MaxParticipants = &zero
		assert.Error(t, req.Validate())
	})

	t.Run("missing college", func(t *testing.T) {
		req := valid
		req.CollegeID = 0
		assert.Error(t, req.Validate())
	})

	t.Run("every supported type accepted", func(t *testing.T) {
		for _, eventType := range domain.EventTypes {
			req := valid
			req.EventType = eventType
			assert.NoError(t, req.Validate(), eventType)
		}
	})
}

func TestUpdateEventRequestValidate(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	valid := UpdateEventRequest{
		Title:     "Spring Hackathon",
		EventType: "hackathon",
		StartDate: start,
		EndDate:   start.Add(8 * time.Hour),
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("missing event type", func(t *testing.T) {
		req := valid
		req.EventType = ""
		assert.Error(t, req.Validate())
	})

	t.Run("unknown event type", func(t *testing.T) {
		req := valid
		req.EventType = "rave"
		assert.Error(t, req.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		req := valid
		req.EndDate = start.Add(-time.Hour)
		assert.ErrorIs(t, req.Validate(), errEndBeforeStart)
	})

	t.Run("zero capacity", func(t *testing.T) {
		zero := 0
		req := valid
		req.MaxParticipants = &zero
		assert.Error(t, req.Validate())
	})
}

func TestMarkAttendanceRequestValidate(t *testing.T) {
	valid := MarkAttendanceRequest{StudentID: 10, Status: "present"}
	assert.NoError(t, valid.Validate())

	badStatus := MarkAttendanceRequest{StudentID: 10, Status: "vanished"}
	assert.Error(t, badStatus.Validate())
}

func TestSubmitFeedbackRequestValidate(t *testing.T) {
	valid := SubmitFeedbackRequest{StudentID: 10, Rating: 4}
	assert.NoError(t, valid.Validate())

	for _, rating := range []int{0, 6, -1} {
		req := SubmitFeedbackRequest{StudentID: 10, Rating: rating}
		assert.Error(t, req.Validate(), "rating %d should fail", rating)
	}
}
