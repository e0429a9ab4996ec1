package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/resto-manager/internal/analytics"
	"github.com/nimasrn/resto-manager/internal/model"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
	"github.com/shopspring/decimal"
)

type ExpenseService interface {
	List(ctx context.Context) ([]*model.Expense, error)
	Create(ctx context.Context, p model.ExpenseCreateRequest) (*model.Expense, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, month string) (*analytics.ExpenseSummary, error)
}

type ExpenseHandler struct {
	svc ExpenseService
}

func RegisterExpenseRoutes(e *router.Group, h *ExpenseHandler) {
	e.GET("/expenses", h.ListExpenses)
	e.POST("/expenses", h.CreateExpense)
	e.GET("/expenses/summary", h.SummarizeExpenses)
	e.GET("/expenses/categories", h.ListCategories)
	e.DELETE("/expenses/{id}", h.DeleteExpense)
}

func NewExpenseHandler(svc ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		svc: svc,
	}
}

type createExpenseRequest struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *ExpenseHandler) ListExpenses(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *ExpenseHandler) CreateExpense(ctx *xhttp.RequestCtx) {
	var req createExpenseRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	exp, err := h.svc.Create(ctx, model.ExpenseCreateRequest{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, createdResponse{ID: exp.ID})
}

func (h *ExpenseHandler) DeleteExpense(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeNoContent(ctx)
}

func (h *ExpenseHandler) SummarizeExpenses(ctx *xhttp.RequestCtx) {
	summary, err := h.svc.Summary(ctx, query(ctx, "month"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, summary)
}

func (h *ExpenseHandler) ListCategories(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, categoriesResponse{Categories: model.ExpenseCategories})
}
