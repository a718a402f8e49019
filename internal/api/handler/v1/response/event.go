package response

import (
	"github.com/campushq/campus-events-api/internal/domain"
)

// EventDetail decorates an event with the live seat count so clients can
// render "42 / 100 registered" without a second request.
type EventDetail struct {
	domain.Event

	RegisteredCount int  `json:"registered_count"`
	SpotsRemaining  *int `json:"spots_remaining"`
}

func NewEventDetail(event domain.Event, registered int) EventDetail {
	detail := EventDetail{
		Event:           event,
		RegisteredCount: registered,
	}

	if event.MaxParticipants != nil {
		remaining := *event.MaxParticipants - registered
		if remaining < 0 {
			remaining = 0
		}
		detail.SpotsRemaining = &remaining
	}

	return detail
}
