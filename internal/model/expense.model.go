package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date layout of Expense.Date.
const DateLayout = "2006-01-02"

// ExpenseCategories are the categories offered for new expenses. Category is
// free text; this list is a suggestion and is not enforced.
var ExpenseCategories = []string{
	"Mahsulotlar",
	"Kommunal",
	"Ish haqi",
	"Ijara",
	"Jihozlar",
	"Boshqa",
}

// Amounts travel as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Expense struct {
	ID       int64           `json:"id,omitempty"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

// ExpenseCreateRequest is the input for creating an expense.
type ExpenseCreateRequest struct {
	Title    string
	Amount   decimal.Decimal
	Category string
	Date     string
}

func (p ExpenseCreateRequest) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if !p.Amount.IsPositive() {
		return errors.New("amount must exceed zero")
	}
	if strings.TrimSpace(p.Category) == "" {
		return errors.New("category is required")
	}
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	return nil
}
