package directory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/authcore/internal/domain/auth"
)

func localFixture(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "admins.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLite_AddGetRoundTrip(t *testing.T) {
	store := localFixture(t)
	ctx := context.Background()

	rec, err := store.Add(ctx, auth.AdminRecord{SteamID: testSteamID, StaffName: "ana", StaffRole: "Developer"})
	require.NoError(t, err)
	assert.Equal(t, testSteamID, rec.SteamID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := store.Get(ctx, testSteamID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.StaffName)
	assert.Equal(t, auth.RoleDeveloper, got.StaffRole)
}

func TestSQLite_AddUpsertsExisting(t *testing.T) {
	store := localFixture(t)
	ctx := context.Background()

	first, err := store.Add(ctx, auth.AdminRecord{SteamID: testSteamID, StaffName: "ana", StaffRole: "Staff"})
	require.NoError(t, err)

	store.SetNow(func() time.Time { return time.Now().Add(time.Hour) })
	second, err := store.Add(ctx, auth.AdminRecord{SteamID: testSteamID, StaffName: "ana b", StaffRole: "Developer"})
	require.NoError(t, err)

	assert.Equal(t, "ana b", second.StaffName)
	assert.Equal(t, auth.RoleDeveloper, second.StaffRole)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLite_GetMissing(t *testing.T) {
	store := localFixture(t)
	_, err := store.Get(context.Background(), testSteamID)
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestSQLite_UpdatePartial(t *testing.T) {
	store := localFixture(t)
	ctx := context.Background()

	_, err := store.Add(ctx, auth.AdminRecord{SteamID: testSteamID, StaffName: "ana", StaffRole: "Staff"})
	require.NoError(t, err)

	role := auth.RoleAdministrador
	rec, err := store.Update(ctx, testSteamID, auth.AdminRecordPatch{StaffRole: &role})
	require.NoError(t, err)
	assert.Equal(t, "ana", rec.StaffName)
	assert.Equal(t, auth.RoleAdministrador, rec.StaffRole)
}

func TestSQLite_UpdateMissing(t *testing.T) {
	store := localFixture(t)
	name := "ghost"
	_, err := store.Update(context.Background(), testSteamID, auth.AdminRecordPatch{StaffName: &name})
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestSQLite_RemoveAndCount(t *testing.T) {
	store := localFixture(t)
	ctx := context.Background()

	_, err := store.Add(ctx, auth.AdminRecord{SteamID: testSteamID, StaffRole: "Developer"})
	require.NoError(t, err)
	_, err = store.Add(ctx, auth.AdminRecord{SteamID: "76561199481226330", StaffRole: "Staff"})
	require.NoError(t, err)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, store.Remove(ctx, testSteamID))

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, store.Remove(ctx, testSteamID), auth.ErrNotFound)
}

func TestSQLite_ListOrdered(t *testing.T) {
	store := localFixture(t)
	ctx := context.Background()

	for _, id := range []string{"76561199481226331", "76561199481226329", "76561199481226330"} {
		_, err := store.Add(ctx, auth.AdminRecord{SteamID: id, StaffRole: "Staff"})
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "76561199481226329", records[0].SteamID)
	assert.Equal(t, "76561199481226331", records[2].SteamID)
}
