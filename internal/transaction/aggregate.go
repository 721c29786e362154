package transaction

import (
	"time"

	"mypocket-backend/internal/models"
)

// Filter selects transactions for aggregation. UserID is always required;
// CategoryID and Type are skipped when empty. The window is half-open:
// Start <= date < End.
type Filter struct {
	UserID     string
	CategoryID string
	Type       models.TransactionType
	Start      time.Time
	End        time.Time
}

// MonthRange returns the UTC window covering one calendar month:
// [midnight of the 1st, midnight of the 1st of the next month). time.Date
// normalizes month 13, so December rolls into January of the next year.
// Budget spend and dashboard figures all bucket on exactly this window.
func MonthRange(month, year int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return start, end
}
