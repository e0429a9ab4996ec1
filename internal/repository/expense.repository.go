package repository

import (
	"context"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/pkg/store"
)

type ExpenseRepository struct {
	*store.DB
}

func NewExpenseRepository(db *store.DB) *ExpenseRepository {
	return &ExpenseRepository{
		db,
	}
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*model.Expense, error) {
	conn, err := r.Session(ctx)
	if err != nil {
		return nil, err
	}

	var entities []*ExpenseEntity
	if err := conn.Find(&entities).Error; err != nil {
		return nil, err
	}
	return toExpenseModels(entities), nil
}

// ListByMonth returns the expenses dated within month (YYYY-MM) using the
// date index.
func (r *ExpenseRepository) ListByMonth(ctx context.Context, month string) ([]*model.Expense, error) {
	conn, err := r.Session(ctx)
	if err != nil {
		return nil, err
	}

	var entities []*ExpenseEntity
	err = conn.Where("date >= ? AND date < ?", month+"-01", month+"-32").Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toExpenseModels(entities), nil
}

func (r *ExpenseRepository) Create(ctx context.Context, exp *model.Expense) (int64, error) {
	entity := toExpenseEntity(exp)

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		conn, err := r.Session(ctx)
		if err != nil {
			return err
		}
		if entity.ID != 0 {
			if err := ensureFree(conn, &ExpenseEntity{}, entity.ID); err != nil {
				return err
			}
		}
		return conn.Create(entity).Error
	})
	if err != nil {
		return 0, translateError(err)
	}

	exp.ID = entity.ID
	return entity.ID, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.Session(ctx)
	if err != nil {
		return err
	}
	return conn.Delete(&ExpenseEntity{}, id).Error
}
