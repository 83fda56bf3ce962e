package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *UserStore {
	t.Helper()
	return NewUserStore(filepath.Join(t.TempDir(), "users.json"))
}

func sampleUser(email string) User {
	now := time.Now().UTC()
	return User{
		ID:           "11111111-2222-3333-4444-555555555555",
		Email:        email,
		Name:         "Jordan Analyst",
		Organization: "State Energy Office",
		CreatedAt:    now,
		UpdatedAt:    now,
		LastAccessAt: now,
		AccessCount:  1,
		Domain:       "energy.state.gov",
		AutoApproved: true,
		Status:       "active",
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := testStore(t)

	users, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "load must not create the file")
}

func TestUpsertAndLoad(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Upsert(sampleUser("jordan@energy.state.gov")))

	users, err := s.Load()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jordan@energy.state.gov", users[0].Email)
	assert.Equal(t, "State Energy Office", users[0].Organization)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "users")
	assert.Contains(t, doc, "lastUpdated")

	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")
}

func TestUpsertReplacesByEmail(t *testing.T) {
	s := testStore(t)

	first := sampleUser("jordan@energy.state.gov")
	require.NoError(t, s.Upsert(first))

	second := first
	second.Email = "Jordan@Energy.State.GOV"
	second.Name = "Jordan Q Analyst"
	second.AccessCount = 2
	require.NoError(t, s.Upsert(second))

	users, err := s.Load()
	require.NoError(t, err)
	require.Len(t, users, 1, "case-insensitive match must replace, not append")
	assert.Equal(t, "Jordan Q Analyst", users[0].Name)
	assert.Equal(t, 2, users[0].AccessCount)
}

func TestFindByEmail(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Upsert(sampleUser("jordan@energy.state.gov")))

	found, err := s.FindByEmail("  JORDAN@energy.state.gov ")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Analyst", found.Name)

	_, err = s.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCount(t *testing.T) {
	s := testStore(t)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.Upsert(sampleUser("a@example.org")))
	require.NoError(t, s.Upsert(sampleUser("b@example.org")))

	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUpsertCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	s := NewUserStore(filepath.Join(dir, "nested", "deeper", "users.json"))

	require.NoError(t, s.Upsert(sampleUser("a@example.org")))

	users, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoadCorruptFile(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse user store")
}
