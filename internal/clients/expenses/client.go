package expenses

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/yatishb23/expense-tracker-frontend/internal/entity/expense"
)

const (
	userExpensesPath = "/userExpenses/"
	expensesPath     = "/expenses"

	dateOnlyLayout        = "2006-01-02"
	defaultTimeoutSeconds = 10
)

type config interface {
	BaseURL() string
	TimeoutSeconds() int64
}

// Client talks to the remote expense backend. Durability is entirely
// the backend's responsibility; this client only moves records over
// the wire.
type Client struct {
	baseURL string
	client  *http.Client
}

type expenseItem struct {
	ExpenseID   string  `json:"expenseId"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type listResponse struct {
	Expenses []expenseItem `json:"expenses"`
}

func New(conf config) *Client {
	timeout := conf.TimeoutSeconds()
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}
	return &Client{
		baseURL: strings.TrimSuffix(conf.BaseURL(), "/"),
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *Client) ListExpenses(ctx context.Context, username string) ([]expense.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+userExpensesPath+url.PathEscape(username), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building list request")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "listing expenses")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("list expenses: status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading list response")
	}

	var list listResponse
	if err = json.Unmarshal(body, &list); err != nil {
		return nil, errors.Wrap(err, "unmarshalling list response")
	}

	records := make([]expense.Record, 0, len(list.Expenses))
	for _, item := range list.Expenses {
		records = append(records, item.toRecord())
	}
	return records, nil
}

func (c *Client) CreateExpense(ctx context.Context, rec expense.Record) error {
	amount, _ := rec.Amount.Float64()
	payload, err := json.Marshal(expenseItem{
		ExpenseID:   rec.ID,
		Username:    rec.Owner,
		Description: rec.Description,
		Amount:      amount,
		Date:        rec.OccurredOn.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return errors.Wrap(err, "marshalling expense")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+expensesPath, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "building create request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "creating expense")
	}
	defer res.Body.Close()

	if !isSuccess(res.StatusCode) {
		return errors.Errorf("create expense: status %d", res.StatusCode)
	}
	return nil
}

// DeleteExpense removes the record with the given id. The backend
// treats deleting an absent id as success, so no NotFound mapping is
// needed here.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+expensesPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return errors.Wrap(err, "building delete request")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "deleting expense")
	}
	defer res.Body.Close()

	if !isSuccess(res.StatusCode) {
		return errors.Errorf("delete expense: status %d", res.StatusCode)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func (item expenseItem) toRecord() expense.Record {
	date, err := time.Parse(time.RFC3339, item.Date)
	if err != nil {
		// some deployments store bare dates
		date, _ = time.Parse(dateOnlyLayout, item.Date)
	}
	return expense.Record{
		ID:          item.ExpenseID,
		Owner:       item.Username,
		Description: item.Description,
		Amount:      decimal.NewFromFloat(item.Amount),
		OccurredOn:  date,
	}
}
