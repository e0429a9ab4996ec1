package services

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/nimasrn/resto-manager/internal/model"
)

type ReservationRepository interface {
	List(ctx context.Context) ([]*model.Reservation, error)
	Create(ctx context.Context, res *model.Reservation) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

type ReservationNotifier interface {
	ReservationCreated(res *model.Reservation)
}

type ReservationService struct {
	repo     ReservationRepository
	notifier ReservationNotifier
}

func NewReservationService(repo ReservationRepository, notifier ReservationNotifier) *ReservationService {
	return &ReservationService{
		repo:     repo,
		notifier: notifier,
	}
}

// List returns every reservation, latest date first.
func (s *ReservationService) List(ctx context.Context) ([]*model.Reservation, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError("list reservations", err)
	}
	slices.SortStableFunc(items, func(a, b *model.Reservation) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return items, nil
}

// Create stores a new reservation, pending unless a status is given, and
// queues its notification.
func (s *ReservationService) Create(ctx context.Context, p model.ReservationCreateRequest) (*model.Reservation, error) {
	if err := p.Validate(); err != nil {
		return nil, invalid(err)
	}

	res := &model.Reservation{
		CustomerName: strings.TrimSpace(p.CustomerName),
		Phone:        strings.TrimSpace(p.Phone),
		TableNumber:  p.TableNumber,
		Guests:       p.Guests,
		Date:         p.Date.UTC(),
		Status:       p.Status,
	}
	if res.Status == "" {
		res.Status = model.ReservationStatusPending
	}

	if _, err := s.repo.Create(ctx, res); err != nil {
		return nil, storeError("create reservation", err)
	}

	if s.notifier != nil {
		s.notifier.ReservationCreated(res)
	}
	return res, nil
}

// UpdateStatus sets the status of reservation id. Any status may follow any
// other; an unknown id is ignored.
func (s *ReservationService) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return storeError("update reservation status", err)
	}
	return nil
}

func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("delete reservation", err)
	}
	return nil
}
