// Package analytics derives the monthly expense report shown on the
// expenses page.
package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/shopspring/decimal"
)

type DayGroup struct {
	Date     string           `json:"date"`
	Total    decimal.Decimal  `json:"total"`
	Expenses []*model.Expense `json:"expenses"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type ExpenseSummary struct {
	Month      string          `json:"month"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Days       []DayGroup      `json:"days"`
	Categories []CategoryTotal `json:"categories"`
	// TopCategory is empty when the month has no expenses.
	TopCategory string `json:"topCategory,omitempty"`
}

// SummarizeExpenses reports the expenses dated in month (YYYY-MM). An empty
// month covers every expense. Days are newest first; categories are ordered
// by total, largest first, ties by name.
func SummarizeExpenses(expenses []*model.Expense, month string) *ExpenseSummary {
	s := &ExpenseSummary{
		Month:      month,
		Total:      decimal.Zero,
		Days:       []DayGroup{},
		Categories: []CategoryTotal{},
	}

	days := make(map[string]int)
	categories := make(map[string]int)
	for _, exp := range expenses {
		if !strings.HasPrefix(exp.Date, month) {
			continue
		}
		s.Count++
		s.Total = s.Total.Add(exp.Amount)

		i, ok := days[exp.Date]
		if !ok {
			i = len(s.Days)
			days[exp.Date] = i
			s.Days = append(s.Days, DayGroup{Date: exp.Date, Total: decimal.Zero})
		}
		s.Days[i].Total = s.Days[i].Total.Add(exp.Amount)
		s.Days[i].Expenses = append(s.Days[i].Expenses, exp)

		j, ok := categories[exp.Category]
		if !ok {
			j = len(s.Categories)
			categories[exp.Category] = j
			s.Categories = append(s.Categories, CategoryTotal{Category: exp.Category, Total: decimal.Zero})
		}
		s.Categories[j].Total = s.Categories[j].Total.Add(exp.Amount)
	}

	slices.SortFunc(s.Days, func(a, b DayGroup) int {
		return strings.Compare(b.Date, a.Date)
	})
	slices.SortFunc(s.Categories, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	if len(s.Categories) > 0 {
		s.TopCategory = s.Categories[0].Category
	}
	return s
}
