package connections

import (
	"context"
	"errors"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/zipparents/backend/internal/platform/logging"
)

const connectionsCollection = "connections"

// firestoreConnection maps to the Firestore document structure. Participants
// duplicates the two uids as an array so ListForUser can use an
// array-contains filter.
type firestoreConnection struct {
	RequesterUID string    `firestore:"requester_uid"`
	RecipientUID string    `firestore:"recipient_uid"`
	Participants []string  `firestore:"participants"`
	Status       string    `firestore:"status"`
	CreatedAt    time.Time `firestore:"created_at"`
	RespondedAt  time.Time `firestore:"responded_at"`
}

func (fc *firestoreConnection) decode(id string) *Connection {
	return &Connection{
		ID:           id,
		RequesterUID: fc.RequesterUID,
		RecipientUID: fc.RecipientUID,
		Status:       Status(fc.Status),
		CreatedAt:    fc.CreatedAt,
		RespondedAt:  fc.RespondedAt,
	}
}

func encode(c *Connection) firestoreConnection {
	return firestoreConnection{
		RequesterUID: c.RequesterUID,
		RecipientUID: c.RecipientUID,
		Participants: []string{c.RequesterUID, c.RecipientUID},
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		RespondedAt:  c.RespondedAt,
	}
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Request creates a pending connection in a transaction so a duplicate
// request collapses onto the existing document.
func (s *FirestoreStore) Request(ctx context.Context, requesterUID, recipientUID string) (*Connection, error) {
	if requesterUID == recipientUID {
		return nil, ErrSelfConnection
	}

	id := PairID(requesterUID, recipientUID)
	docRef := s.client.Collection(connectionsCollection).Doc(id)

	var result *Connection
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			var fc firestoreConnection
			if err := doc.DataTo(&fc); err != nil {
				return err
			}
			// A declined pair may try again; anything else already stands.
			if Status(fc.Status) != StatusDeclined {
				return ErrAlreadyExists
			}
		} else if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		c := &Connection{
			ID:           id,
			RequesterUID: requesterUID,
			RecipientUID: recipientUID,
			Status:       StatusPending,
			CreatedAt:    time.Now().UTC(),
		}
		if err := tx.Set(docRef, encode(c)); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "request", requesterUID, "connection", id, "failure", nil)
		return nil, err
	}
	applog.LogAuditEvent(ctx, "request", requesterUID, "connection", id, "success", nil)
	return result, nil
}

// Respond accepts or declines a pending request inside a transaction.
func (s *FirestoreStore) Respond(ctx context.Context, id, uid string, accept bool) (*Connection, error) {
	docRef := s.client.Collection(connectionsCollection).Doc(id)

	var result *Connection
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fc firestoreConnection
		if err := doc.DataTo(&fc); err != nil {
			return err
		}
		c := fc.decode(id)
		if c.RecipientUID != uid {
			return ErrNotRecipient
		}
		if c.Status != StatusPending {
			return ErrNotPending
		}
		if accept {
			c.Status = StatusAccepted
		} else {
			c.Status = StatusDeclined
		}
		c.RespondedAt = time.Now().UTC()
		if err := tx.Set(docRef, encode(c)); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "respond", uid, "connection", id, "failure", nil)
		return nil, err
	}
	applog.LogAuditEvent(ctx, "respond", uid, "connection", id, "success", nil)
	return result, nil
}

// Remove deletes the connection. Either participant may remove it.
func (s *FirestoreStore) Remove(ctx context.Context, id, uid string) error {
	docRef := s.client.Collection(connectionsCollection).Doc(id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fc firestoreConnection
		if err := doc.DataTo(&fc); err != nil {
			return err
		}
		if fc.RequesterUID != uid && fc.RecipientUID != uid {
			return ErrNotFound
		}
		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "remove", uid, "connection", id, "failure", nil)
		return err
	}
	applog.LogAuditEvent(ctx, "remove", uid, "connection", id, "success", nil)
	return nil
}

// Get retrieves a connection by ID.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Connection, error) {
	doc, err := s.client.Collection(connectionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fc firestoreConnection
	if err := doc.DataTo(&fc); err != nil {
		return nil, err
	}
	return fc.decode(doc.Ref.ID), nil
}

// ListForUser returns the user's connections, newest activity first.
func (s *FirestoreStore) ListForUser(ctx context.Context, uid string, limit int) ([]*Connection, error) {
	iter := s.client.Collection(connectionsCollection).
		Where("participants", "array-contains", uid).
		Documents(ctx)
	defer iter.Stop()

	var out []*Connection
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var fc firestoreConnection
		if err := doc.DataTo(&fc); err != nil {
			return nil, err
		}
		out = append(out, fc.decode(doc.Ref.ID))
	}

	sort.Slice(out, func(i, j int) bool {
		return lastActivity(out[i]).After(lastActivity(out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Connected reports whether the two users have an accepted connection.
func (s *FirestoreStore) Connected(ctx context.Context, a, b string) (bool, error) {
	c, err := s.Get(ctx, PairID(a, b))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.Status == StatusAccepted, nil
}

func lastActivity(c *Connection) time.Time {
	if c.RespondedAt.After(c.CreatedAt) {
		return c.RespondedAt
	}
	return c.CreatedAt
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
