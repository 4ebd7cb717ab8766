package session

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yatishb23/expense-tracker-frontend/internal/clients/identity"
	"github.com/yatishb23/expense-tracker-frontend/internal/logger"
	"github.com/yatishb23/expense-tracker-frontend/internal/model/ledger"
)

var (
	ErrMissingField       = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type identityClient interface {
	SubmitCredentials(ctx context.Context, username, password string) (identity.Outcome, error)
}

// Manager owns the active session: who is signed in and the ledger
// store bound to them. The username is fixed at sign-in and handed to
// the store explicitly; nothing reads it from ambient state. At most
// one session is active at a time.
type Manager struct {
	identity identityClient
	backend  ledger.Backend
	store    *ledger.Store
}

func NewManager(identity identityClient, backend ledger.Backend) *Manager {
	return &Manager{
		identity: identity,
		backend:  backend,
	}
}

// SignIn authenticates and, on success, replaces any previous session
// with a fresh store loaded from the backend. The identity endpoint
// answers an existing-user conflict for known users, so that outcome
// also counts as a valid sign-in.
func (m *Manager) SignIn(ctx context.Context, username, password string) (*ledger.Store, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}

	outcome, err := m.identity.SubmitCredentials(ctx, username, password)
	if err != nil {
		return nil, errors.Wrap(err, "sign in")
	}

	switch outcome {
	case identity.OutcomeSignedIn, identity.OutcomeAlreadyExists:
	case identity.OutcomeInvalidCredentials:
		return nil, ErrInvalidCredentials
	default:
		return nil, errors.Errorf("sign in: unexpected outcome %d", outcome)
	}

	m.store = ledger.NewStore(m.backend, username)
	m.store.Load(ctx)
	logger.Info("session started", zap.String("user", username))
	return m.store, nil
}

// SignUp registers a new account. Local checks run before any request
// is made. It does not start a session; the user signs in afterwards.
func (m *Manager) SignUp(ctx context.Context, username, password, confirm string) error {
	if username == "" || password == "" || confirm == "" {
		return ErrMissingField
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	outcome, err := m.identity.SubmitCredentials(ctx, username, password)
	if err != nil {
		return errors.Wrap(err, "sign up")
	}

	switch outcome {
	case identity.OutcomeCreated:
		return nil
	case identity.OutcomeAlreadyExists:
		return ErrUserExists
	case identity.OutcomeInvalidCredentials:
		return ErrInvalidCredentials
	default:
		return errors.Errorf("sign up: unexpected outcome %d", outcome)
	}
}

// Active returns the current session's store, if any.
func (m *Manager) Active() (*ledger.Store, bool) {
	return m.store, m.store != nil
}

// Logout discards the session ledger. Nothing is persisted locally.
func (m *Manager) Logout() {
	if m.store != nil {
		logger.Info("session ended", zap.String("user", m.store.Username()))
	}
	m.store = nil
}
