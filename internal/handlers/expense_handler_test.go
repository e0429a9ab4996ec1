package handlers

import (
	"fmt"
	"testing"

	"github.com/nimasrn/resto-manager/internal/analytics"
	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/internal/services"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("accepts a numeric amount", func(t *testing.T) {
		svc := new(MockExpenseService)
		handler := NewExpenseHandler(svc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.ExpenseCreateRequest) bool {
			return p.Title == "Go'sht" &&
				p.Amount.Equal(decimal.RequireFromString("150000.50")) &&
				p.Category == "Mahsulotlar" &&
				p.Date == "2024-05-02"
		})).Return(&model.Expense{ID: 1}, nil)

		body := []byte(`{"title":"Go'sht","amount":150000.50,"category":"Mahsulotlar","date":"2024-05-02"}`)
		ctx := setupTestContext("POST", "/api/v1/expenses", body)
		handler.CreateExpense(ctx)

		assert.Equal(t, xhttp.StatusCreated, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"id":1}`, string(ctx.Response.Body()))
		svc.AssertExpectations(t)
	})

	t.Run("rejects a non numeric amount", func(t *testing.T) {
		svc := new(MockExpenseService)
		handler := NewExpenseHandler(svc)

		ctx := setupTestContext("POST", "/api/v1/expenses", []byte(`{"title":"x","amount":"a lot"}`))
		handler.CreateExpense(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(MockExpenseService)
		handler := NewExpenseHandler(svc)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: amount must exceed zero", services.ErrValidation))

		ctx := setupTestContext("POST", "/api/v1/expenses", []byte(`{"title":"x","amount":0,"category":"c","date":"2024-05-02"}`))
		handler.CreateExpense(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
	})
}

func TestExpenseHandler_ListExpenses(t *testing.T) {
	svc := new(MockExpenseService)
	handler := NewExpenseHandler(svc)

	svc.On("List", mock.Anything).Return([]*model.Expense{
		{ID: 1, Title: "Gaz", Amount: decimal.NewFromInt(250000), Category: "Kommunal", Date: "2024-05-02"},
	}, nil)

	ctx := setupTestContext("GET", "/api/v1/expenses", nil)
	handler.ListExpenses(ctx)

	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t,
		`[{"id":1,"title":"Gaz","amount":250000,"category":"Kommunal","date":"2024-05-02"}]`,
		string(ctx.Response.Body()))
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	svc := new(MockExpenseService)
	handler := NewExpenseHandler(svc)

	svc.On("Delete", mock.Anything, int64(9)).Return(nil)

	ctx := setupTestContext("DELETE", "/api/v1/expenses/9", nil)
	ctx.SetUserValue("id", "9")
	handler.DeleteExpense(ctx)

	assert.Equal(t, xhttp.StatusNoContent, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestExpenseHandler_SummarizeExpenses(t *testing.T) {
	t.Run("passes the month through", func(t *testing.T) {
		svc := new(MockExpenseService)
		handler := NewExpenseHandler(svc)

		svc.On("Summary", mock.Anything, "2024-05").Return(&analytics.ExpenseSummary{
			Month: "2024-05",
			Total: decimal.NewFromInt(300),
			Count: 2,
		}, nil)

		ctx := setupTestContext("GET", "/api/v1/expenses/summary?month=2024-05", nil)
		handler.SummarizeExpenses(ctx)

		assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
		var resp map[string]any
		decodeBody(t, ctx, &resp)
		assert.Equal(t, "2024-05", resp["month"])
		svc.AssertExpectations(t)
	})

	t.Run("bad month", func(t *testing.T) {
		svc := new(MockExpenseService)
		handler := NewExpenseHandler(svc)

		svc.On("Summary", mock.Anything, "May").Return(nil, services.ErrInvalidMonth)

		ctx := setupTestContext("GET", "/api/v1/expenses/summary?month=May", nil)
		handler.SummarizeExpenses(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
	})
}

func TestExpenseHandler_ListCategories(t *testing.T) {
	handler := NewExpenseHandler(new(MockExpenseService))

	ctx := setupTestContext("GET", "/api/v1/expenses/categories", nil)
	handler.ListCategories(ctx)

	var resp categoriesResponse
	decodeBody(t, ctx, &resp)
	assert.Equal(t, model.ExpenseCategories, resp.Categories)
}
