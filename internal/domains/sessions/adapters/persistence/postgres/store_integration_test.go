//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/ports"
	"github.com/Apurer/henri-storefront/internal/platform/postgres/pgtest"
)

func TestStore_SaveLoadUpsert(t *testing.T) {
	store := NewStore(pgtest.Start(t).DB)
	ctx := context.Background()

	session := domain.New("tok-1", time.Now().Add(time.Hour).UTC())
	require.NoError(t, session.Cart.Add(5, 2))
	session.LoginCustomer(1, "ana@example.com", "Ana")
	session.AddNotice(domain.NoticeSuccess, "Welcome")
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Load(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Cart.Quantity(5))
	assert.Equal(t, "ana@example.com", loaded.CustomerEmail)
	require.Len(t, loaded.Notices, 1)

	loaded.DrainNotices()
	loaded.LoginAdmin(9, "admin@henri.com")
	require.NoError(t, store.Save(ctx, loaded))

	again, err := store.Load(ctx, "tok-1")
	require.NoError(t, err)
	assert.Empty(t, again.Notices)
	assert.True(t, again.AdminLoggedIn)

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Load(ctx, "tok-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_PurgeExpired(t *testing.T) {
	store := NewStore(pgtest.Start(t).DB)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.New("old", time.Now().Add(-time.Minute).UTC())))
	require.NoError(t, store.Save(ctx, domain.New("new", time.Now().Add(time.Hour).UTC())))

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Load(ctx, "new")
	assert.NoError(t, err)
}
