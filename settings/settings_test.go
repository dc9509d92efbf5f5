package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordpecker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetFromFile(t *testing.T) {
	path := writeConfig(t, `
engines:
  chatgpt:
    api_key: sk-stored
    model: gpt-4o
`)
	store, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-stored", store.Get("engines.chatgpt.api_key", ""))
	assert.Equal(t, "gpt-4o", store.Get("engines.chatgpt.model", "default-model"))
}

func TestGetReturnsDefaultWhenUnset(t *testing.T) {
	path := writeConfig(t, `engines: {}`)
	store, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "fallback", store.Get("engines.gemini.api_key", "fallback"))
}

func TestMissingFileServesDefaults(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "def", store.Get("engines.ernie.api_key", "def"))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
engines:
  chatgpt:
    api_key: sk-stored
`)
	t.Setenv("WORDPECKER_ENGINES_CHATGPT_API_KEY", "sk-env")

	store, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", store.Get("engines.chatgpt.api_key", ""))
}

func TestSetIsVisibleToGet(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	store.Set("engines.gemini.model", "gemini-pro")
	assert.Equal(t, "gemini-pro", store.Get("engines.gemini.model", ""))
}
