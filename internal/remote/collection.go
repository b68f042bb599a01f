// Package remote defines the port to the remote contacts collection and the
// error taxonomy its backends share. The collection is push-first: mutations
// are fire-and-forget and the subscription delivers full snapshots, so a
// caller never assumes its own write is visible before the next snapshot.
package remote

import (
	"context"

	"rolodex/internal/models"
)

// SnapshotFunc receives the full ordered contents of the collection. It is
// invoked once on registration with the current state and again after every
// change; redelivery of an unchanged snapshot is allowed.
type SnapshotFunc func(contacts []models.Contact)

// UnsubscribeFunc stops snapshot delivery. Subscriptions normally live for
// the whole session, so most callers only use it on shutdown.
type UnsubscribeFunc func()

// Collection is the remote document store holding the contacts. Identifiers
// are opaque strings assigned by the store; Create does not return the new
// id, it arrives with a later snapshot.
type Collection interface {
	Subscribe(ctx context.Context, onSnapshot SnapshotFunc) (UnsubscribeFunc, error)
	Create(ctx context.Context, fields models.ContactFields) error
	Update(ctx context.Context, id string, fields models.ContactFields) error
	Delete(ctx context.Context, id string) error
}
