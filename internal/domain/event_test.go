package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(n int) *int {
	return &n
}

func TestCheckRegistrationOpen(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   Event
		now     time.Time
		wantErr error
	}{
		{
			name:  "open without explicit window",
			event: Event{Status: EventStatusActive, StartDate: start},
			now:   start.Add(-24 * time.Hour),
		},
		{
			name:    "ended event is closed",
			event:   Event{Status: EventStatusEnded, StartDate: start},
			now:     start.Add(-24 * time.Hour),
			wantErr: ErrEventClosed,
		},
		{
			name:    "cancelled event is closed",
			event:   Event{Status: EventStatusCancelled, StartDate: start},
			now:     start.Add(-24 * time.Hour),
			wantErr: ErrEventClosed,
		},
		{
			name: "before registration opens",
			event: Event{
				Status:                EventStatusActive,
				StartDate:             start,
				RegistrationStartDate: timePtr(start.Add(-48 * time.Hour)),
			},
			now:     start.Add(-72 * time.Hour),
			wantErr: ErrRegistrationNotOpen,
		},
		{
			name: "after explicit deadline",
			event: Event{
				Status:               EventStatusActive,
				StartDate:            start,
				RegistrationDeadline: timePtr(start.Add(-24 * time.Hour)),
			},
			now:     start.Add(-time.Hour),
			wantErr: ErrRegistrationClosed,
		},
		{
			name:    "no deadline closes at start date",
			event:   Event{Status: EventStatusActive, StartDate: start},
			now:     start.Add(time.Minute),
			wantErr: ErrRegistrationClosed,
		},
		{
			name: "exactly at deadline still open",
			event: Event{
				Status:               EventStatusActive,
				StartDate:            start,
				RegistrationDeadline: timePtr(start.Add(-24 * time.Hour)),
			},
			now: start.Add(-24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.CheckRegistrationOpen(tt.now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIsFull(t *testing.T) {
	unlimited := Event{}
	assert.False(t, unlimited.IsFull(1_000_000))

	capped := Event{MaxParticipants: intPtr(2)}
	assert.False(t, capped.IsFull(1))
	assert.True(t, capped.IsFull(2))
	assert.True(t, capped.IsFull(3))
}

func TestEventLifecycle(t *testing.T) {
	t.Run("end active event", func(t *testing.T) {
		e := Event{Status: EventStatusActive}
		require.NoError(t, e.End())
		assert.Equal(t, EventStatusEnded, e.Status)

		// irreversible
		assert.ErrorIs(t, e.End(), ErrEventNotActive)
		assert.ErrorIs(t, e.Cancel(), ErrEventNotActive)
	})

	t.Run("cancel active event", func(t *testing.T) {
		e := Event{Status: EventStatusActive}
		require.NoError(t, e.Cancel())
		assert.Equal(t, EventStatusCancelled, e.Status)

		assert.ErrorIs(t, e.End(), ErrEventNotActive)
		assert.ErrorIs(t, e.Cancel(), ErrEventNotActive)
	})
}

func TestGenerateEventCode(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "TECH-HACK-20260301-001", GenerateEventCode("TECH", "hackathon", start, 1))
	assert.Equal(t, "TECH-FEST-20260301-012", GenerateEventCode("TECH", "fest", start, 12))
	assert.Equal(t, "ARTS-WORK-20260301-002", GenerateEventCode("ARTS", "workshop", start, 2))
}
