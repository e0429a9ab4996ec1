package notify

import (
	"testing"
	"time"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150,000 so'm", FormatAmount(decimal.NewFromInt(150000)))
	assert.Equal(t, "1,250.5 so'm", FormatAmount(decimal.RequireFromString("1250.50")))
	assert.Equal(t, "900 so'm", FormatAmount(decimal.NewFromInt(900)))
}

func TestReservationMessage(t *testing.T) {
	tashkent := time.FixedZone("UZT", 5*60*60)
	res := &model.Reservation{
		CustomerName: "Ali & Vali",
		Phone:        "+998901234567",
		TableNumber:  4,
		Guests:       6,
		Date:         time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC),
	}

	msg := ReservationMessage(res, tashkent)
	assert.Contains(t, msg, "<b>Yangi Stol Buyurtmasi!</b>")
	assert.Contains(t, msg, "<b>Mijoz:</b> Ali &amp; Vali")
	assert.Contains(t, msg, "<b>Stol:</b> 4-stol")
	assert.Contains(t, msg, "<b>Mehmonlar:</b> 6 kishi")
	assert.Contains(t, msg, "<b>Sana:</b> 01.05.2024")
	assert.Contains(t, msg, "<b>Vaqt:</b> 19:30")
	assert.Contains(t, msg, "<i>Ilovadan yuborildi</i>")
}

func TestExpenseMessage(t *testing.T) {
	msg := ExpenseMessage(&model.Expense{
		Title:    "5kg go'sht",
		Amount:   decimal.NewFromInt(150000),
		Category: "Mahsulotlar",
		Date:     "2024-05-01",
	})
	assert.Contains(t, msg, "<b>Summa:</b> 150,000 so'm")
	assert.Contains(t, msg, "<b>Nomi:</b> 5kg go&#39;sht")
	assert.Contains(t, msg, "<b>Kategoriya:</b> Mahsulotlar")
	assert.Contains(t, msg, "<b>Sana:</b> 2024-05-01")
}

func TestConnectionTestMessage(t *testing.T) {
	assert.Equal(t, "✅ <b>Sinov Xabari</b>\n\nOsh Markazi tizimidan muvaffaqiyatli ulandi!", ConnectionTestMessage("Osh Markazi"))
}
