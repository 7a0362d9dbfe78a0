// Package events manages parent meetups: creation, discovery by zip code,
// and capacity-checked attendance.
package events

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("event not found")
	ErrInvalidZip    = errors.New("event zip code must be exactly 5 digits")
	ErrInvalidTime   = errors.New("event must end after it starts")
	ErrEventFull     = errors.New("event is at capacity")
	ErrAlreadyJoined = errors.New("already attending this event")
	ErrNotAttending  = errors.New("not attending this event")
	ErrNotHost       = errors.New("only the host may do this")
	ErrHostLeaving   = errors.New("the host cannot leave; cancel the event instead")
	ErrCanceled      = errors.New("event is canceled")
)

// Event is one hosted meetup. Attendees is a set and always contains the
// host.
type Event struct {
	ID          string
	HostUID     string
	Title       string
	Description string
	ZipCode     string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	// Capacity of zero means unlimited.
	Capacity  int
	Attendees []string
	Canceled  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Full reports whether the event cannot take more attendees.
func (e *Event) Full() bool {
	return e.Capacity > 0 && len(e.Attendees) >= e.Capacity
}

// Attending reports whether uid is in the attendee set.
func (e *Event) Attending(uid string) bool {
	for _, a := range e.Attendees {
		if a == uid {
			return true
		}
	}
	return false
}

// CreateParams for creating an event.
type CreateParams struct {
	Title       string
	Description string
	ZipCode     string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
}

// Service defines event operations.
//
// Implementations must enforce: Join is atomic with respect to capacity (two
// concurrent joins cannot overfill an event), and attendee sets never hold
// duplicates.
type Service interface {
	Create(ctx context.Context, hostUID string, params CreateParams) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	// ListUpcoming returns non-canceled events in the zip area that have not
	// ended yet, soonest first.
	ListUpcoming(ctx context.Context, zipPrefix string, limit int) ([]*Event, error)
	Join(ctx context.Context, id, uid string) (*Event, error)
	Leave(ctx context.Context, id, uid string) (*Event, error)
	// Cancel marks the event canceled. Only the host may cancel.
	Cancel(ctx context.Context, id, hostUID string) error
}
