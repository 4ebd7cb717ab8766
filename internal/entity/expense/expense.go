package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single expense line item owned by one user.
// The ID is generated client-side at creation time and is the only key
// used for removal.
type Record struct {
	ID          string
	Owner       string
	Description string
	Amount      decimal.Decimal
	OccurredOn  time.Time // calendar date; time-of-day carries no meaning
}
