package notify

import (
	"fmt"
	"html"
	"time"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const footer = "<i>Ilovadan yuborildi</i>"

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount with thousands separators and the currency
// suffix, e.g. "150,000 so'm".
func FormatAmount(amount decimal.Decimal) string {
	return amountPrinter.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2))) + " so'm"
}

// ReservationMessage is sent when a reservation is created. The date is shown
// in loc.
func ReservationMessage(res *model.Reservation, loc *time.Location) string {
	at := res.Date.In(loc)
	return fmt.Sprintf(`🍽 <b>Yangi Stol Buyurtmasi!</b>

👤 <b>Mijoz:</b> %s
📞 <b>Tel:</b> %s
🪑 <b>Stol:</b> %d-stol
👥 <b>Mehmonlar:</b> %d kishi
📅 <b>Sana:</b> %s
⏰ <b>Vaqt:</b> %s

%s`,
		html.EscapeString(res.CustomerName),
		html.EscapeString(res.Phone),
		res.TableNumber,
		res.Guests,
		at.Format("02.01.2006"),
		at.Format("15:04"),
		footer,
	)
}

func ExpenseMessage(exp *model.Expense) string {
	return fmt.Sprintf(`💸 <b>Yangi Chiqim!</b>

💰 <b>Summa:</b> %s
📦 <b>Nomi:</b> %s
🏷 <b>Kategoriya:</b> %s
📅 <b>Sana:</b> %s

%s`,
		FormatAmount(exp.Amount),
		html.EscapeString(exp.Title),
		html.EscapeString(exp.Category),
		exp.Date,
		footer,
	)
}

// ConnectionTestMessage confirms the bot settings work.
func ConnectionTestMessage(restaurantName string) string {
	return fmt.Sprintf("✅ <b>Sinov Xabari</b>\n\n%s tizimidan muvaffaqiyatli ulandi!", html.EscapeString(restaurantName))
}
