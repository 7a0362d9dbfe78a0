// Package connections manages parent-to-parent connection requests. A
// connection document is keyed by the sorted uid pair, so a second request
// between the same two people always lands on the existing document.
package connections

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service errors
var (
	ErrNotFound       = errors.New("connection not found")
	ErrSelfConnection = errors.New("cannot connect with yourself")
	ErrAlreadyExists  = errors.New("connection already exists")
	ErrNotRecipient   = errors.New("only the recipient may respond")
	ErrNotPending     = errors.New("connection is not pending")
)

// Status of a connection.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Connection links two users. ID is PairID(requester, recipient).
type Connection struct {
	ID           string
	RequesterUID string
	RecipientUID string
	Status       Status
	CreatedAt    time.Time
	RespondedAt  time.Time
}

// Other returns the participant that is not uid.
func (c *Connection) Other(uid string) string {
	if c.RequesterUID == uid {
		return c.RecipientUID
	}
	return c.RequesterUID
}

// PairID builds the deterministic document ID for two uids, independent of
// who initiated.
func PairID(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "_" + b
}

// Service defines connection operations.
type Service interface {
	// Request creates a pending connection. A declined connection may be
	// re-requested; a pending or accepted one returns ErrAlreadyExists.
	Request(ctx context.Context, requesterUID, recipientUID string) (*Connection, error)
	// Respond accepts or declines a pending request. Only the recipient may
	// respond.
	Respond(ctx context.Context, id, uid string, accept bool) (*Connection, error)
	// Remove deletes the connection entirely. Either participant may remove.
	Remove(ctx context.Context, id, uid string) error
	Get(ctx context.Context, id string) (*Connection, error)
	// ListForUser returns the user's connections, newest activity first.
	ListForUser(ctx context.Context, uid string, limit int) ([]*Connection, error)
	// Connected reports whether the two users have an accepted connection.
	Connected(ctx context.Context, a, b string) (bool, error)
}
