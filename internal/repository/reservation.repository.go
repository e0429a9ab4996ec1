package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/pkg/store"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	*store.DB
}

func NewReservationRepository(db *store.DB) *ReservationRepository {
	return &ReservationRepository{
		db,
	}
}

// List returns every reservation. Order is unspecified; callers sort.
func (r *ReservationRepository) List(ctx context.Context) ([]*model.Reservation, error) {
	conn, err := r.Session(ctx)
	if err != nil {
		return nil, err
	}

	var entities []*ReservationEntity
	if err := conn.Find(&entities).Error; err != nil {
		return nil, err
	}
	return toReservationModels(entities), nil
}

// Create stores res and returns its identifier. A zero ID is assigned by the
// store; an explicit ID must not be in use.
func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) (int64, error) {
	entity := toReservationEntity(res)

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		conn, err := r.Session(ctx)
		if err != nil {
			return err
		}
		if entity.ID != 0 {
			if err := ensureFree(conn, &ReservationEntity{}, entity.ID); err != nil {
				return err
			}
		}
		return conn.Create(entity).Error
	})
	if err != nil {
		return 0, translateError(err)
	}

	res.ID = entity.ID
	return entity.ID, nil
}

// UpdateStatus replaces the status of reservation id in one transaction. A
// missing reservation is not an error.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		conn, err := r.Session(ctx)
		if err != nil {
			return err
		}

		var entity ReservationEntity
		err = conn.Where("id = ?", id).Take(&entity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		entity.Status = string(status)
		return conn.Save(&entity).Error
	})
}

// Delete removes reservation id if it exists.
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.Session(ctx)
	if err != nil {
		return err
	}
	return conn.Delete(&ReservationEntity{}, id).Error
}

func ensureFree(conn *gorm.DB, entity any, id int64) error {
	var count int64
	if err := conn.Model(entity).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateID
	}
	return nil
}
