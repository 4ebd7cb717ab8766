package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `backend:
  base-url: https://backend.example.com
  timeout-seconds: 3

metrics:
  addr: "127.0.0.1:9090"

app:
  currency-symbol: "$"
`

func writeConfig(t *testing.T, contents string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(contents), 0o600))
	t.Setenv(configFileKey, file)
}

func Test_OnNew_ShouldParseAllSections(t *testing.T) {
	writeConfig(t, testYAML)

	service, err := New()

	require.NoError(t, err)
	assert.Equal(t, "https://backend.example.com", service.Backend().BaseURL())
	assert.Equal(t, int64(3), service.Backend().TimeoutSeconds())
	assert.Equal(t, "127.0.0.1:9090", service.Metrics().Addr())
	assert.Equal(t, "$", service.App().CurrencySymbol())
}

func Test_OnNew_ShouldFailWhenFileMissing(t *testing.T) {
	t.Setenv(configFileKey, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := New()

	require.Error(t, err)
}

func Test_OnCurrencySymbol_ShouldDefaultWhenUnset(t *testing.T) {
	writeConfig(t, "backend:\n  base-url: https://backend.example.com\n")

	service, err := New()

	require.NoError(t, err)
	assert.Equal(t, "₹", service.App().CurrencySymbol())
}
