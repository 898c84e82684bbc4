package session

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/redis"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter := redis.NewAdapterWithClient("test", goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	}))
	return mr, NewStore(adapter, time.Hour)
}

func TestStore_RoundTrip(t *testing.T) {
	_, store := setupStore(t)

	user := &model.User{ID: 7, Username: "admin", Perms: model.PermAdmin}
	sess, err := store.Create(user)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	got, err := store.Get(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "admin", got.Username)
	assert.True(t, got.Perms.Can(model.PermEditClient))
	assert.Zero(t, got.TenantID)
}

func TestStore_UpdateTenant(t *testing.T) {
	_, store := setupStore(t)

	sess, err := store.Create(&model.User{ID: 1, Username: "u"})
	require.NoError(t, err)

	sess.TenantID = 3
	require.NoError(t, store.Update(sess))

	got, err := store.Get(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TenantID)
}

func TestStore_GetRefreshesTTL(t *testing.T) {
	mr, store := setupStore(t)

	sess, err := store.Create(&model.User{ID: 1, Username: "u"})
	require.NoError(t, err)

	mr.FastForward(30 * time.Minute)
	_, err = store.Get(sess.Token)
	require.NoError(t, err)

	// another 45 minutes would have expired the original TTL
	mr.FastForward(45 * time.Minute)
	_, err = store.Get(sess.Token)
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	_, store := setupStore(t)

	sess, err := store.Create(&model.User{ID: 1, Username: "u"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(sess.Token))
	_, err = store.Get(sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UnknownToken(t *testing.T) {
	_, store := setupStore(t)
	_, err := store.Get("no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}
