package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/memory"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/ports"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestResume_StartsFreshForUnknownToken(t *testing.T) {
	m := NewManager(memory.NewStore())
	session, err := m.Resume(context.Background(), "missing")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.NotEqual(t, "missing", session.Token)
}

func TestSaveAndResume_KeepsCart(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewStore())

	session := m.Start()
	require.NoError(t, session.Cart.Add(3, 2))
	session.AddNotice("success", "Added")
	require.NoError(t, m.Save(ctx, session))

	resumed, err := m.Resume(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, session.Token, resumed.Token)
	require.Equal(t, 2, resumed.Cart.Quantity(3))
	require.Len(t, resumed.Notices, 1)
}

func TestResume_ExpiredStartsOver(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := memory.NewStore()
	store.WithClock(c.Now)
	m := NewManager(store, WithTTL(time.Hour), WithClock(c.Now))

	session := m.Start()
	require.NoError(t, session.Cart.Add(3, 1))
	require.NoError(t, m.Save(ctx, session))

	c.now = c.now.Add(2 * time.Hour)
	resumed, err := m.Resume(ctx, session.Token)
	require.NoError(t, err)
	require.NotEqual(t, session.Token, resumed.Token)
	require.True(t, resumed.Cart.IsEmpty())
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := memory.NewStore()
	store.WithClock(c.Now)
	m := NewManager(store, WithTTL(time.Hour), WithClock(c.Now))

	old := m.Start()
	require.NoError(t, m.Save(ctx, old))
	c.now = c.now.Add(30 * time.Minute)
	fresh := m.Start()
	require.NoError(t, m.Save(ctx, fresh))

	c.now = c.now.Add(45 * time.Minute)
	purged, err := m.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)

	_, err = store.Load(ctx, fresh.Token)
	require.NoError(t, err)
}

func TestRenew_KeepsContentsUnderNewToken(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	m := NewManager(store)

	session := m.Start()
	require.NoError(t, session.Cart.Add(3, 2))
	require.NoError(t, m.Save(ctx, session))
	previous := session.Token

	m.Renew(session)
	require.NotEqual(t, previous, session.Token)
	require.NoError(t, m.Save(ctx, session))
	require.NoError(t, m.Destroy(ctx, previous))

	_, err := store.Load(ctx, previous)
	require.ErrorIs(t, err, ports.ErrNotFound)
	resumed, err := m.Resume(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, 2, resumed.Cart.Quantity(3))
}
