package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/resource"
	"libreserve/internal/infra"

	"github.com/google/uuid"
)

// ReservationStore keeps the full reservation history in memory. Records
// are stored as snapshots so callers can mutate their own copy and persist
// it explicitly with Update.
type ReservationStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*reservation.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		records: make(map[uuid.UUID]*reservation.Reservation),
	}
}

func snapshot(rec *reservation.Reservation) *reservation.Reservation {
	participants := make([]string, len(rec.Participants()))
	copy(participants, rec.Participants())
	return reservation.Reconstruct(
		rec.ID(), rec.ResourceID(), rec.Class(), rec.UserID(), participants,
		rec.Day(), rec.Slot(), rec.Status(), rec.CreatedAt(), rec.UpdatedAt(),
	)
}

func (s *ReservationStore) Create(_ context.Context, rec *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID()]; exists {
		return infra.WrapStoreErr("reservation already exists", nil, infra.KindConflict)
	}
	s.records[rec.ID()] = snapshot(rec)
	return nil
}

func (s *ReservationStore) Update(_ context.Context, rec *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID()]; !exists {
		return infra.WrapStoreErr("reservation not found", nil, infra.KindNotFound)
	}
	s.records[rec.ID()] = snapshot(rec)
	return nil
}

func (s *ReservationStore) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, infra.WrapStoreErr("reservation not found", nil, infra.KindNotFound)
	}
	return snapshot(rec), nil
}

func (s *ReservationStore) FindByUser(_ context.Context, userID string) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*reservation.Reservation
	for _, rec := range s.records {
		if rec.UserID() == userID {
			result = append(result, snapshot(rec))
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *ReservationStore) FindActiveByUserClass(_ context.Context, userID string, class resource.Class) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*reservation.Reservation
	for _, rec := range s.records {
		if rec.UserID() == userID && rec.Class() == class && rec.Status().IsActive() {
			result = append(result, snapshot(rec))
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *ReservationStore) FindConfirmed(_ context.Context) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*reservation.Reservation
	for _, rec := range s.records {
		if rec.Status() == reservation.StatusConfirmed {
			result = append(result, snapshot(rec))
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *ReservationStore) FindConfirmedEndingBefore(_ context.Context, t time.Time) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*reservation.Reservation
	for _, rec := range s.records {
		if rec.Status() == reservation.StatusConfirmed && rec.Slot().EndedBy(t) {
			result = append(result, snapshot(rec))
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *ReservationStore) FindRequestedBefore(_ context.Context, t time.Time) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*reservation.Reservation
	for _, rec := range s.records {
		if rec.Status() == reservation.StatusRequested && !rec.UpdatedAt().After(t) {
			result = append(result, snapshot(rec))
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(recs []*reservation.Reservation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt().Equal(recs[j].CreatedAt()) {
			return recs[i].ID().String() < recs[j].ID().String()
		}
		return recs[i].CreatedAt().After(recs[j].CreatedAt())
	})
}
