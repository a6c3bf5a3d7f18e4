package queries

import (
	"context"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/resource"
	"libreserve/internal/infra"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	// GetByID returns one reservation; only the requester or an
	// administrator may read it.
	GetByID(ctx context.Context, actorID string, admin bool, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID string) ([]*ReservationView, error)
	// ActiveByUser returns the user's non-terminal reservations across all
	// classes.
	ActiveByUser(ctx context.Context, userID string) ([]*ActiveReservationView, error)
}

type reservationQueriesImpl struct {
	store   shared.ReservationStore
	catalog shared.CatalogStore
}

func NewReservationQueries(store shared.ReservationStore, catalog shared.CatalogStore) ReservationQueries {
	return &reservationQueriesImpl{store: store, catalog: catalog}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID string, admin bool, id uuid.UUID) (*ReservationView, error) {
	rec, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	if !rec.IsOwnedBy(actorID) && !admin {
		return nil, errs.ErrNotOwner
	}
	return q.toView(ctx, rec), nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID string) ([]*ReservationView, error) {
	recs, err := q.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list user reservations")
	}
	result := make([]*ReservationView, len(recs))
	for i, rec := range recs {
		result[i] = q.toView(ctx, rec)
	}
	return result, nil
}

func (q *reservationQueriesImpl) ActiveByUser(ctx context.Context, userID string) ([]*ActiveReservationView, error) {
	var result []*ActiveReservationView
	for _, class := range []resource.Class{resource.ClassLaptop, resource.ClassCubicle, resource.ClassBook} {
		recs, err := q.store.FindActiveByUserClass(ctx, userID, class)
		if err != nil {
			return nil, errs.Wrap(err, "failed to list active reservations")
		}
		for _, rec := range recs {
			result = append(result, &ActiveReservationView{
				ID:         rec.ID(),
				ResourceID: rec.ResourceID(),
				Class:      rec.Class().String(),
				Date:       rec.Day().String(),
				Slot:       rec.Slot().String(),
				Status:     rec.Status().String(),
			})
		}
	}
	return result, nil
}

func (q *reservationQueriesImpl) toView(ctx context.Context, rec *reservation.Reservation) *ReservationView {
	name := rec.ResourceID()
	if res, err := q.catalog.FindByID(ctx, rec.ResourceID()); err == nil {
		name = res.Name()
	}
	return &ReservationView{
		ID:             rec.ID(),
		ResourceID:     rec.ResourceID(),
		ResourceName:   name,
		Class:          rec.Class().String(),
		UserID:         rec.UserID(),
		ParticipantIDs: rec.Participants(),
		Date:           rec.Day().String(),
		Slot:           rec.Slot().String(),
		Status:         rec.Status().String(),
		CreatedAt:      rec.CreatedAt(),
		UpdatedAt:      rec.UpdatedAt(),
	}
}
