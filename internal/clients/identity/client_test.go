package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	url string
}

func (c testConfig) BaseURL() string { return c.url }
func (c testConfig) TimeoutSeconds() int64 { return 1 }

func Test_OnSubmitCredentials_ShouldMapStatusCodes(t *testing.T) {
	tests := []struct {
		status  int
		outcome Outcome
	}{
		{http.StatusOK, OutcomeSignedIn},
		{http.StatusCreated, OutcomeCreated},
		{http.StatusConflict, OutcomeAlreadyExists},
		{http.StatusUnauthorized, OutcomeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/user", r.URL.Path)

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "alice", body["username"])
				assert.Equal(t, "hunter2", body["password"])

				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := New(testConfig{url: srv.URL})
			outcome, err := client.SubmitCredentials(context.Background(), "alice", "hunter2")

			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func Test_OnSubmitCredentials_ShouldSurfaceServerMessageOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"msg":"database unavailable"}`)
	}))
	defer srv.Close()

	client := New(testConfig{url: srv.URL})
	outcome, err := client.SubmitCredentials(context.Background(), "alice", "hunter2")

	require.Error(t, err)
	assert.Equal(t, OutcomeUnknown, outcome)
	assert.Contains(t, err.Error(), "database unavailable")
}

func Test_OnSubmitCredentials_ShouldFailWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := New(testConfig{url: srv.URL})
	_, err := client.SubmitCredentials(context.Background(), "alice", "hunter2")

	require.Error(t, err)
}
