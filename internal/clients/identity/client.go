package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	userPath = "/user"

	defaultTimeoutSeconds = 10
)

// Outcome is the backend's answer to a credentials submission. The
// same endpoint serves both sign-in and sign-up; the session layer
// decides what each outcome means for the flow it is running.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSignedIn
	OutcomeCreated
	OutcomeAlreadyExists
	OutcomeInvalidCredentials
)

type config interface {
	BaseURL() string
	TimeoutSeconds() int64
}

type Client struct {
	baseURL string
	client  *http.Client
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Msg string `json:"msg"`
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

func (c *Client) SubmitCredentials(ctx context.Context, username, password string) (Outcome, error) {
	payload, err := json.Marshal(credentials{Username: username, Password: password})
	if err != nil {
		return OutcomeUnknown, errors.Wrap(err, "marshalling credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+userPath, bytes.NewReader(payload))
	if err != nil {
		return OutcomeUnknown, errors.Wrap(err, "building user request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return OutcomeUnknown, errors.Wrap(err, "submitting credentials")
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return OutcomeSignedIn, nil
	case http.StatusCreated:
		return OutcomeCreated, nil
	case http.StatusConflict:
		return OutcomeAlreadyExists, nil
	case http.StatusUnauthorized:
		return OutcomeInvalidCredentials, nil
	}

	body, _ := io.ReadAll(res.Body)
	var resp userResponse
	_ = json.Unmarshal(body, &resp)
	if resp.Msg != "" {
		return OutcomeUnknown, errors.Errorf("submit credentials: %s (status %d)", resp.Msg, res.StatusCode)
	}
	return OutcomeUnknown, errors.Errorf("submit credentials: status %d", res.StatusCode)
}
