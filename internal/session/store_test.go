package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessdesk/internal/api"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(filepath.Join(dir, "credentials.enc"), filepath.Join(dir, "master.key"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(api.Credentials{Token: "bearer-token-123"}))

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-123", creds.Token)
}

func TestLoadWithoutSave(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestCredentialFileIsNotPlaintext(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(api.Credentials{Token: "super-secret"}))

	raw, err := os.ReadFile(store.credentialFile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret")
}

func TestFilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(api.Credentials{Token: "tok"}))

	for _, path := range []string{store.credentialFile, store.masterKeyFile} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), path)
	}
}

func TestWrongKeyFailsToOpen(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(api.Credentials{Token: "tok"}))

	// Regenerating the master key makes the sealed file unreadable.
	require.NoError(t, os.Remove(store.masterKeyFile))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorruptCredentials)
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(api.Credentials{Token: "first"}))
	require.NoError(t, store.Save(api.Credentials{Token: "second"}))

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", creds.Token)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(api.Credentials{Token: "tok"}))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)

	// Clearing again is fine.
	assert.NoError(t, store.Clear())
}
