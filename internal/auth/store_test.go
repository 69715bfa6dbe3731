package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session")
	store := NewFileStore(path, "unit-test-secret")

	sess := &Session{
		Token:        "tok",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User: User{
			ID:         7,
			Email:      "store@partslink.test",
			Name:       "Ravi Kumar",
			Role:       RoleStoreman,
			CompanyID:  1,
			BranchCode: "BLR01",
		},
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, sess, loaded)

	// Nothing readable should sit on disk.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "refresh")
	require.NotContains(t, string(raw), "store@partslink.test")
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent"), "secret")
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreWrongSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, NewFileStore(path, "secret-a").Save(&Session{Token: "tok"}))

	_, err := NewFileStore(path, "secret-b").Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))

	_, err := NewFileStore(path, "secret").Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store := NewFileStore(path, "secret")
	require.NoError(t, store.Save(&Session{Token: "tok"}))

	require.NoError(t, store.Clear())
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
