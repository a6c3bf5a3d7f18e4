package pgstore

import (
	"context"
	"errors"
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/resource"
	"libreserve/internal/domain/schedule"
	"libreserve/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationStore persists reservation history in Postgres. The engine's
// per-resource locks provide commit atomicity; this store only has to be a
// faithful system of record.
type ReservationStore struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

func NewReservationStore(pool *pgxpool.Pool, loc *time.Location) *ReservationStore {
	return &ReservationStore{pool: pool, loc: loc}
}

const selectReservationColumns = `
	SELECT id, resource_id, class, user_id, participants, day, start_at, end_at, status, created_at, updated_at
	FROM reservations
`

func (s *ReservationStore) Create(ctx context.Context, rec *reservation.Reservation) error {
	query := `
		INSERT INTO reservations (id, resource_id, class, user_id, participants, day, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := RunInTxWithRetry(ctx, s.pool, 3, func(tx pgx.Tx) (struct{}, error) {
		_, execErr := tx.Exec(ctx, query,
			rec.ID(),
			rec.ResourceID(),
			rec.Class().String(),
			rec.UserID(),
			rec.Participants(),
			rec.Day().StartOfDay(s.loc),
			rec.Slot().Start(),
			slotEnd(rec.Slot()),
			rec.Status().String(),
			rec.CreatedAt(),
			rec.UpdatedAt(),
		)
		return struct{}{}, execErr
	})
	if err != nil {
		return infra.WrapStoreErr("failed to create reservation", err)
	}
	return nil
}

func (s *ReservationStore) Update(ctx context.Context, rec *reservation.Reservation) error {
	query := `
		UPDATE reservations
		SET status = $2, updated_at = $3
		WHERE id = $1
	`
	tag, err := RunInTxWithRetry(ctx, s.pool, 3, func(tx pgx.Tx) (int64, error) {
		result, execErr := tx.Exec(ctx, query, rec.ID(), rec.Status().String(), rec.UpdatedAt())
		if execErr != nil {
			return 0, execErr
		}
		return result.RowsAffected(), nil
	})
	if err != nil {
		return infra.WrapStoreErr("failed to update reservation", err)
	}
	if tag == 0 {
		return infra.WrapStoreErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (s *ReservationStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx, selectReservationColumns+" WHERE id = $1", id)
	rec, err := s.scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapStoreErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapStoreErr("failed to find reservation", err)
	}
	return rec, nil
}

func (s *ReservationStore) FindByUser(ctx context.Context, userID string) ([]*reservation.Reservation, error) {
	query := selectReservationColumns + " WHERE user_id = $1 ORDER BY created_at DESC"
	return s.queryMany(ctx, "failed to find reservations by user", query, userID)
}

func (s *ReservationStore) FindActiveByUserClass(ctx context.Context, userID string, class resource.Class) ([]*reservation.Reservation, error) {
	query := selectReservationColumns + `
		WHERE user_id = $1 AND class = $2 AND status IN ('requested', 'confirmed')
		ORDER BY created_at DESC
	`
	return s.queryMany(ctx, "failed to find active reservations", query, userID, class.String())
}

func (s *ReservationStore) FindConfirmed(ctx context.Context) ([]*reservation.Reservation, error) {
	query := selectReservationColumns + " WHERE status = 'confirmed' ORDER BY created_at DESC"
	return s.queryMany(ctx, "failed to find confirmed reservations", query)
}

func (s *ReservationStore) FindConfirmedEndingBefore(ctx context.Context, t time.Time) ([]*reservation.Reservation, error) {
	query := selectReservationColumns + `
		WHERE status = 'confirmed' AND end_at IS NOT NULL AND end_at <= $1
		ORDER BY created_at DESC
	`
	return s.queryMany(ctx, "failed to find ended reservations", query, t)
}

func (s *ReservationStore) FindRequestedBefore(ctx context.Context, t time.Time) ([]*reservation.Reservation, error) {
	query := selectReservationColumns + `
		WHERE status = 'requested' AND updated_at <= $1
		ORDER BY created_at DESC
	`
	return s.queryMany(ctx, "failed to find stale requested reservations", query, t)
}

func (s *ReservationStore) queryMany(ctx context.Context, msg, query string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapStoreErr(msg, err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		rec, scanErr := s.scanReservation(rows)
		if scanErr != nil {
			return nil, infra.WrapStoreErr(msg, scanErr)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr(msg, err)
	}
	return result, nil
}

type reservationRow interface {
	Scan(dest ...any) error
}

func (s *ReservationStore) scanReservation(row reservationRow) (*reservation.Reservation, error) {
	var (
		id                   uuid.UUID
		resourceID, class    string
		userID, status       string
		participants         []string
		day, startAt         time.Time
		endAt                *time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &resourceID, &class, &userID, &participants, &day, &startAt, &endAt, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var slot schedule.TimeSlot
	if endAt == nil {
		slot = schedule.NewOpenEndedSlot(startAt)
	} else {
		var err error
		slot, err = schedule.NewTimeSlot(startAt, *endAt)
		if err != nil {
			return nil, err
		}
	}

	return reservation.Reconstruct(
		id,
		resourceID,
		resource.Class(class),
		userID,
		participants,
		schedule.DateOf(day, s.loc),
		slot,
		reservation.Status(status),
		createdAt,
		updatedAt,
	), nil
}

func slotEnd(slot schedule.TimeSlot) *time.Time {
	if slot.OpenEnded() {
		return nil
	}
	end := slot.End()
	return &end
}
