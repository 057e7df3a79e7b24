package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Sheet    string `json:"sheet"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	err := os.WriteFile(name, []byte(`{
		// json5 allows comments
		email: "a@b.c",
		sheet: "sheet-id",
	}`), 0o600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "a@b.c", cfg.Email)
	require.Equal(t, "sheet-id", cfg.Sheet)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{email: "a@b.c", sheet: "base"}`), 0o600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{sheet: "override"}`), 0o600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "a@b.c", cfg.Email)
	require.Equal(t, "override", cfg.Sheet)
}

func TestReadConfigEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONCERTS_TEST_PASSWORD", "hunter2")

	name := filepath.Join(dir, "config.json5")
	err := os.WriteFile(name, []byte(`{password: "${CONCERTS_TEST_PASSWORD}"}`), 0o600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "hunter2", cfg.Password)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
