package session

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatishb23/expense-tracker-frontend/internal/clients/identity"
	"github.com/yatishb23/expense-tracker-frontend/internal/entity/expense"
)

type fakeIdentity struct {
	outcome identity.Outcome
	err     error
	calls   int
}

func (f *fakeIdentity) SubmitCredentials(context.Context, string, string) (identity.Outcome, error) {
	f.calls++
	return f.outcome, f.err
}

type fakeBackend struct {
	records map[string][]expense.Record
}

func (f *fakeBackend) ListExpenses(_ context.Context, username string) ([]expense.Record, error) {
	return f.records[username], nil
}

func (f *fakeBackend) CreateExpense(context.Context, expense.Record) error { return nil }
func (f *fakeBackend) DeleteExpense(context.Context, string) error { return nil }

func bobExpenses() map[string][]expense.Record {
	return map[string][]expense.Record{
		"bob": {
			{
				ID:          "e-1",
				Owner:       "bob",
				Description: "Rent",
				Amount:      decimal.RequireFromString("500"),
				OccurredOn:  time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func Test_OnSignIn_ShouldLoadLedgerForThatUser(t *testing.T) {
	manager := NewManager(&fakeIdentity{outcome: identity.OutcomeSignedIn}, &fakeBackend{records: bobExpenses()})

	store, err := manager.SignIn(context.Background(), "bob", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "bob", store.Username())
	require.Len(t, store.Records(), 1)

	active, ok := manager.Active()
	require.True(t, ok)
	assert.Same(t, store, active)
}

func Test_OnSignIn_ShouldAcceptExistingUserConflict(t *testing.T) {
	manager := NewManager(&fakeIdentity{outcome: identity.OutcomeAlreadyExists}, &fakeBackend{records: bobExpenses()})

	store, err := manager.SignIn(context.Background(), "bob", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "bob", store.Username())
}

func Test_OnSignIn_ShouldRejectInvalidCredentialsWithoutSession(t *testing.T) {
	manager := NewManager(&fakeIdentity{outcome: identity.OutcomeInvalidCredentials}, &fakeBackend{})

	_, err := manager.SignIn(context.Background(), "bob", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, ok := manager.Active()
	assert.False(t, ok)
}

func Test_OnSignIn_ShouldRejectMissingFieldsBeforeNetwork(t *testing.T) {
	ident := &fakeIdentity{outcome: identity.OutcomeSignedIn}
	manager := NewManager(ident, &fakeBackend{})

	_, err := manager.SignIn(context.Background(), "", "hunter2")

	assert.ErrorIs(t, err, ErrMissingField)
	assert.Zero(t, ident.calls)
}

func Test_OnSignIn_ShouldWrapTransportFailure(t *testing.T) {
	manager := NewManager(&fakeIdentity{err: errors.New("connection refused")}, &fakeBackend{})

	_, err := manager.SignIn(context.Background(), "bob", "hunter2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign in")
	_, ok := manager.Active()
	assert.False(t, ok)
}

func Test_OnSignUp_ShouldRejectMismatchedPasswordsBeforeNetwork(t *testing.T) {
	ident := &fakeIdentity{outcome: identity.OutcomeCreated}
	manager := NewManager(ident, &fakeBackend{})

	err := manager.SignUp(context.Background(), "bob", "hunter2", "hunter3")

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Zero(t, ident.calls)
}

func Test_OnSignUp_ShouldSucceedOnCreated(t *testing.T) {
	manager := NewManager(&fakeIdentity{outcome: identity.OutcomeCreated}, &fakeBackend{})

	err := manager.SignUp(context.Background(), "bob", "hunter2", "hunter2")

	require.NoError(t, err)
	_, ok := manager.Active()
	assert.False(t, ok, "sign up must not start a session")
}

func Test_OnSignUp_ShouldReportExistingUser(t *testing.T) {
	manager := NewManager(&fakeIdentity{outcome: identity.OutcomeAlreadyExists}, &fakeBackend{})

	err := manager.SignUp(context.Background(), "bob", "hunter2", "hunter2")

	assert.ErrorIs(t, err, ErrUserExists)
}

func Test_OnLogout_ShouldDiscardLocalState(t *testing.T) {
	backend := &fakeBackend{records: bobExpenses()}
	manager := NewManager(&fakeIdentity{outcome: identity.OutcomeSignedIn}, backend)

	store, err := manager.SignIn(context.Background(), "bob", "hunter2")
	require.NoError(t, err)
	_, err = store.Add("Coffee", "3.50", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, store.Records(), 2)

	manager.Logout()
	_, ok := manager.Active()
	assert.False(t, ok)

	// a new session starts from the backend's view only
	fresh, err := manager.SignIn(context.Background(), "bob", "hunter2")
	require.NoError(t, err)
	assert.Len(t, fresh.Records(), 1)
}
