// Package shared declares the persistence ports of the scheduling core.
// The engine depends only on these abstract read/write operations; the
// backing technology (in-memory maps or Postgres) is an infra choice.
package shared

import (
	"context"
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/resource"

	"github.com/google/uuid"
)

// CatalogStore answers reads over the static resource catalog.
type CatalogStore interface {
	All(ctx context.Context) ([]*resource.Resource, error)
	FindByID(ctx context.Context, id string) (*resource.Resource, error)
}

// ReservationStore is the system of record for reservation history. Records
// are inserted once and only ever updated by state transition; nothing is
// deleted.
type ReservationStore interface {
	Create(ctx context.Context, rec *reservation.Reservation) error
	Update(ctx context.Context, rec *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByUser(ctx context.Context, userID string) ([]*reservation.Reservation, error)
	FindActiveByUserClass(ctx context.Context, userID string, class resource.Class) ([]*reservation.Reservation, error)
	// FindConfirmed lists every Confirmed record; used to rebuild the
	// availability index at startup.
	FindConfirmed(ctx context.Context) ([]*reservation.Reservation, error)
	// FindConfirmedEndingBefore lists Confirmed records whose bounded slot
	// ends at or before t; used by the completion janitor.
	FindConfirmedEndingBefore(ctx context.Context, t time.Time) ([]*reservation.Reservation, error)
	// FindRequestedBefore lists Requested records last touched at or before
	// t. Requested is a transient commit-path state; anything old enough to
	// show up here was orphaned by a failed commit and gets expired by the
	// janitor.
	FindRequestedBefore(ctx context.Context, t time.Time) ([]*reservation.Reservation, error)
}

// ResourceFilter narrows catalog listings; nil fields impose no constraint.
type ResourceFilter struct {
	Class       *resource.Class
	OS          *string
	Brand       *string
	CapacityMin *int
	CapacityMax *int
	LibraryID   *string
	Status      *resource.Status
}

// Matches applies every present option as an exact or range match.
func (f ResourceFilter) Matches(r *resource.Resource) bool {
	if f.Class != nil && r.Class() != *f.Class {
		return false
	}
	if f.OS != nil && r.OS() != *f.OS {
		return false
	}
	if f.Brand != nil && r.Brand() != *f.Brand {
		return false
	}
	if f.CapacityMin != nil && r.Capacity() < *f.CapacityMin {
		return false
	}
	if f.CapacityMax != nil && r.Capacity() > *f.CapacityMax {
		return false
	}
	if f.LibraryID != nil && r.LibraryID() != *f.LibraryID {
		return false
	}
	if f.Status != nil && r.Status() != *f.Status {
		return false
	}
	return true
}
