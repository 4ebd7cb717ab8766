package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yatishb23/expense-tracker-frontend/internal/entity/expense"
	"github.com/yatishb23/expense-tracker-frontend/internal/logger"
)

const dateLayout = "2006-01-02"

// ErrNotFound reports a removal for an id that is not in the ledger.
// It is a benign signal, not a failure.
var ErrNotFound = errors.New("expense not found")

// ValidationError names the input field that failed local validation.
// Nothing reaches the network when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Backend is the remote ledger the store loads from and confirms
// mutations against.
type Backend interface {
	ListExpenses(ctx context.Context, username string) ([]expense.Record, error)
	CreateExpense(ctx context.Context, rec expense.Record) error
	DeleteExpense(ctx context.Context, id string) error
}

// Store owns the in-memory expense ledger of one signed-in user.
// Mutations apply locally before the matching backend call is
// dispatched, and the backend call never blocks the caller. A failed
// confirmation leaves the optimistic state as-is; it is logged and
// counted, never rolled back.
//
// The store is confined to the goroutine driving user commands.
// Confirmation goroutines never touch records, so no locking is
// needed.
type Store struct {
	backend  Backend
	username string
	records  []expense.Record
}

func NewStore(backend Backend, username string) *Store {
	return &Store{
		backend:  backend,
		username: username,
		records:  make([]expense.Record, 0),
	}
}

func (s *Store) Username() string {
	return s.username
}

// Load replaces the ledger wholesale with the backend's view,
// preserving the order the backend returns. A failed load is not an
// error to the caller: the ledger comes up empty ("no expenses yet")
// and the failure goes to the log and the metrics. There is no
// automatic retry; the caller may invoke Load again.
func (s *Store) Load(ctx context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ledger.load")
	defer span.Finish()

	start := time.Now()
	records, err := s.backend.ListExpenses(ctx, s.username)
	observeBackendCall(opLoad, time.Since(start), err != nil)

	if err != nil {
		ext.Error.Set(span, true)
		logger.Error("loading expenses", zap.String("user", s.username), zap.Error(err))
		s.records = make([]expense.Record, 0)
		return
	}
	if records == nil {
		records = make([]expense.Record, 0)
	}
	s.records = records
}

// Add validates the raw input, appends the new record locally and
// submits it to the backend in the background. The append always
// completes before Add returns. On a validation failure the ledger is
// untouched and no request is issued.
func (s *Store) Add(description, amount, occurredOn string) (expense.Record, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return expense.Record{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return expense.Record{}, &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if value.IsNegative() {
		return expense.Record{}, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(occurredOn))
	if err != nil {
		return expense.Record{}, &ValidationError{Field: "date", Reason: "must be yyyy-mm-dd"}
	}

	rec := expense.Record{
		ID:          uuid.NewString(),
		Owner:       s.username,
		Description: description,
		Amount:      value,
		OccurredOn:  date,
	}
	s.records = append(s.records, rec)

	s.confirm(opAdd, func(ctx context.Context) error {
		return s.backend.CreateExpense(ctx, rec)
	})
	return rec, nil
}

// Remove drops the record with the given id locally and requests the
// backend deletion in the background. Removing an id twice is a no-op
// the second time: deletion is idempotent from the caller's side.
func (s *Store) Remove(id string) error {
	at := -1
	for i, rec := range s.records {
		if rec.ID == id {
			at = i
			break
		}
	}
	if at < 0 {
		return ErrNotFound
	}
	s.records = append(s.records[:at], s.records[at+1:]...)

	s.confirm(opRemove, func(ctx context.Context) error {
		return s.backend.DeleteExpense(ctx, id)
	})
	return nil
}

// confirm runs the backend call fire-and-forget. The local mutation is
// already in place by the time this is called.
func (s *Store) confirm(op string, call func(ctx context.Context) error) {
	go func() {
		span, ctx := opentracing.StartSpanFromContext(context.Background(), "ledger."+op)
		defer span.Finish()

		start := time.Now()
		err := call(ctx)
		observeBackendCall(op, time.Since(start), err != nil)
		if err != nil {
			ext.Error.Set(span, true)
			logger.Error("confirming "+op, zap.String("user", s.username), zap.Error(err))
		}
	}()
}

// Records returns the ledger in display order.
func (s *Store) Records() []expense.Record {
	res := make([]expense.Record, len(s.records))
	copy(res, s.records)
	return res
}

// RecordsSince keeps records occurring on or after the boundary.
func (s *Store) RecordsSince(boundary time.Time) []expense.Record {
	res := make([]expense.Record, 0)
	for _, rec := range s.records {
		if !rec.OccurredOn.Before(boundary) {
			res = append(res, rec)
		}
	}
	return res
}

// TotalAmount sums all amounts with decimal arithmetic, so totals stay
// exact to the cent no matter how many records accumulate.
func (s *Store) TotalAmount() decimal.Decimal {
	return sumAmounts(s.records)
}

// TotalSince is TotalAmount restricted to records on or after the
// boundary.
func (s *Store) TotalSince(boundary time.Time) decimal.Decimal {
	return sumAmounts(s.RecordsSince(boundary))
}

func sumAmounts(records []expense.Record) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount)
	}
	return total
}

// Bucket is one bar of the monthly chart.
type Bucket struct {
	Month string
	Total decimal.Decimal
}

// MonthlyBuckets groups records by month name in the order each month
// is first seen while scanning the ledger. The key deliberately
// ignores the year: January 2023 and January 2024 land in the same
// bucket, matching the chart this feeds.
func (s *Store) MonthlyBuckets() []Bucket {
	index := make(map[string]int, 12)
	buckets := make([]Bucket, 0)
	for _, rec := range s.records {
		label := rec.OccurredOn.Month().String()
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Month: label, Total: decimal.Zero})
		}
		buckets[i].Total = buckets[i].Total.Add(rec.Amount)
	}
	return buckets
}
