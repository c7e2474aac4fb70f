package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Content_Service/internal/pkg"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "content.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestTokenCommand(t *testing.T) {
	sqliteEnv(t)
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := execute(t, "token", "user-42")
	require.NoError(t, err)

	claims, err := pkg.NewTokenIssuer("cli-secret", time.Minute).Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestTokenCommandNeedsSecret(t *testing.T) {
	sqliteEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := execute(t, "token", "user-42")
	assert.Error(t, err)
}

func TestMigrateCommands(t *testing.T) {
	sqliteEnv(t)

	_, err := execute(t, "migrate", "up")
	require.NoError(t, err)
	_, err = execute(t, "migrate", "status")
	require.NoError(t, err)
	_, err = execute(t, "migrate", "down")
	require.NoError(t, err)
}
