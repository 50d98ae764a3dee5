// AngelaMos | 2026
// main_test.go

package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

func TestCommandTree(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate", "create-admin"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "config.yaml", flag.DefValue)
}

func TestCreateAdminValidatesBeforeConnecting(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"create-admin", "--email", "not-an-email", "--password", "x"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid admin details")
}

func TestHealthChecksOnlyRequireDatabase(t *testing.T) {
	checks := healthChecks(&core.Database{}, nil, nil)
	require.Len(t, checks, 1)
	assert.Equal(t, "database", checks[0].Name)
	assert.True(t, checks[0].Required)
}

func TestProbesBypassRateLimit(t *testing.T) {
	assert.True(t, isProbe(httptest.NewRequest("GET", "/readyz", nil)))
	assert.True(t, isProbe(httptest.NewRequest("GET", "/metrics", nil)))
	assert.False(t, isProbe(httptest.NewRequest("GET", "/api/health", nil)))
}
