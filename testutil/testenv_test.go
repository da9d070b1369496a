package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("TESTUTIL_FROM_FILE", "")
	t.Setenv("TESTUTIL_PRESET", "kept")
	t.Setenv("TESTUTIL_EXPORTED", "")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`# comment
TESTUTIL_FROM_FILE="quoted value"
TESTUTIL_PRESET=overwritten
export TESTUTIL_EXPORTED='x'
not a pair
`), 0o600))

	LoadDotEnv(path)

	assert.Equal(t, "quoted value", os.Getenv("TESTUTIL_FROM_FILE"))
	assert.Equal(t, "kept", os.Getenv("TESTUTIL_PRESET"))
	assert.Equal(t, "x", os.Getenv("TESTUTIL_EXPORTED"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NotPanics(t, func() { LoadDotEnv(filepath.Join(t.TempDir(), "absent")) })
}

func TestFindModuleRoot(t *testing.T) {
	root := FindModuleRoot("fallback")
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}

func TestLiveTargetFromEnv(t *testing.T) {
	t.Setenv(EnvLiveToken, "tok")
	t.Setenv(EnvLivePath, "docs")
	t.Setenv(EnvLiveFile, "")

	_, ok := LiveTargetFromEnv()
	assert.False(t, ok)

	t.Setenv(EnvLiveFile, "a.txt")

	target, ok := LiveTargetFromEnv()
	require.True(t, ok)
	assert.Equal(t, LiveTarget{Token: "tok", Path: "docs", FileName: "a.txt"}, target)
}
