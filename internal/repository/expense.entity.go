package repository

import (
	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/shopspring/decimal"
)

type ExpenseEntity struct {
	ID       int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Title    string          `gorm:"column:title;not null"`
	Amount   decimal.Decimal `gorm:"column:amount;type:text;not null"`
	Category string          `gorm:"column:category;not null"`
	Date     string          `gorm:"column:date;not null;index:expenses_by_date"`
}

func (ExpenseEntity) TableName() string {
	return "expenses"
}

func toExpenseEntity(m *model.Expense) *ExpenseEntity {
	if m == nil {
		return nil
	}
	return &ExpenseEntity{
		ID:       m.ID,
		Title:    m.Title,
		Amount:   m.Amount,
		Category: m.Category,
		Date:     m.Date,
	}
}

func toExpenseModel(e *ExpenseEntity) *model.Expense {
	if e == nil {
		return nil
	}
	return &model.Expense{
		ID:       e.ID,
		Title:    e.Title,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}
}

func toExpenseModels(entities []*ExpenseEntity) []*model.Expense {
	models := make([]*model.Expense, len(entities))
	for i, e := range entities {
		models[i] = toExpenseModel(e)
	}
	return models
}
