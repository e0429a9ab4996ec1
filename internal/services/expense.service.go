package services

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/nimasrn/resto-manager/internal/analytics"
	"github.com/nimasrn/resto-manager/internal/model"
)

const monthLayout = "2006-01"

type ExpenseRepository interface {
	List(ctx context.Context) ([]*model.Expense, error)
	ListByMonth(ctx context.Context, month string) ([]*model.Expense, error)
	Create(ctx context.Context, exp *model.Expense) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type ExpenseNotifier interface {
	ExpenseCreated(exp *model.Expense)
}

type ExpenseService struct {
	repo     ExpenseRepository
	notifier ExpenseNotifier
}

func NewExpenseService(repo ExpenseRepository, notifier ExpenseNotifier) *ExpenseService {
	return &ExpenseService{
		repo:     repo,
		notifier: notifier,
	}
}

// List returns every expense, latest date first.
func (s *ExpenseService) List(ctx context.Context) ([]*model.Expense, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError("list expenses", err)
	}
	sortExpenses(items)
	return items, nil
}

func (s *ExpenseService) Create(ctx context.Context, p model.ExpenseCreateRequest) (*model.Expense, error) {
	if err := p.Validate(); err != nil {
		return nil, invalid(err)
	}

	exp := &model.Expense{
		Title:    strings.TrimSpace(p.Title),
		Amount:   p.Amount,
		Category: strings.TrimSpace(p.Category),
		Date:     p.Date,
	}
	if _, err := s.repo.Create(ctx, exp); err != nil {
		return nil, storeError("create expense", err)
	}

	if s.notifier != nil {
		s.notifier.ExpenseCreated(exp)
	}
	return exp, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("delete expense", err)
	}
	return nil
}

// Summary reports the expenses of month (YYYY-MM), or of every month when
// month is empty.
func (s *ExpenseService) Summary(ctx context.Context, month string) (*analytics.ExpenseSummary, error) {
	var (
		items []*model.Expense
		err   error
	)
	if month == "" {
		items, err = s.repo.List(ctx)
	} else {
		if _, perr := time.Parse(monthLayout, month); perr != nil {
			return nil, ErrInvalidMonth
		}
		items, err = s.repo.ListByMonth(ctx, month)
	}
	if err != nil {
		return nil, storeError("summarize expenses", err)
	}

	sortExpenses(items)
	return analytics.SummarizeExpenses(items, month), nil
}

func sortExpenses(items []*model.Expense) {
	slices.SortStableFunc(items, func(a, b *model.Expense) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
