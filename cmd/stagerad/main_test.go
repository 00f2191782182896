package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/stagerad/internal/auth"
	"github.com/jbweber/homelab/stagerad/internal/domain"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "stagerad.yaml")
	content := "auth:\n  secret: cli-test-secret\n  issuer: cli-test\ndatabase:\n  path: " + filepath.Join(dir, "cli.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	path := writeConfig(t)

	out, err := execute(t, "--config", path, "token", "--login", "admin", "--role", domain.AuthorityAdmin, "--role", domain.AuthorityUser)
	require.NoError(t, err)

	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "cli-test-secret", TokenTTL: time.Hour, TokenIssuer: "cli-test"})
	claims, err := svc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, []string{domain.AuthorityAdmin, domain.AuthorityUser}, claims.Authorities)
}

func TestTokenCommand_RequiresLogin(t *testing.T) {
	_, err := execute(t, "--config", writeConfig(t), "token")
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	out, err := execute(t, "--config", writeConfig(t), "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema version 2\n", out)
}

func TestMigrateDownCommand(t *testing.T) {
	path := writeConfig(t)

	out, err := execute(t, "--config", path, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema version 2\n", out)

	out, err = execute(t, "--config", path, "migrate", "down")
	require.NoError(t, err)
	assert.Equal(t, "schema version 1\n", out)

	out, err = execute(t, "--config", path, "migrate", "down")
	require.NoError(t, err)
	assert.Equal(t, "schema version 0\n", out)

	// migrating again restores the full schema
	out, err = execute(t, "--config", path, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema version 2\n", out)
}

func TestMigrateCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0600))

	_, err := execute(t, "--config", path, "migrate")
	assert.Error(t, err)
}
