package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/store"
)

func TestNotifyAsyncDelivers(t *testing.T) {
	env := newTestEnv(t)

	env.registry.Dispatcher.NotifyAsync(models.Notification{
		Recipient: "alice",
		Type:      models.NotificationMessage,
		Content:   "hello",
	})
	env.registry.Dispatcher.Flush()

	require.Equal(t, 1, env.notifier.count())
	assert.Equal(t, []string{"alice"}, env.notifier.recipients())
}

func TestFanOutSkipsAuthorAndDeduplicates(t *testing.T) {
	env := newTestEnv(t)

	post := &models.Post{ID: "p1", GroupID: "g1", Author: "alice", Content: "hi"}
	members := []models.Membership{
		{GroupID: "g1", UserID: "alice"},
		{GroupID: "g1", UserID: "bob"},
	}

	env.registry.Dispatcher.FanOutPost(post, members)
	env.registry.Dispatcher.FanOutPost(post, members)
	env.registry.Dispatcher.Flush()

	// Two notifications, but the unseen queue records the post once.
	assert.Equal(t, []string{"bob", "bob"}, env.notifier.recipients())

	ids, ok, err := env.store.UnseenPostIDs("bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, ids)

	_, ok, err = env.store.UnseenPostIDs("alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

// failingNotifier always errors; delivery failures must not disturb state.
type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, models.Notification) error {
	return errors.New("broker unavailable")
}

func TestDeliveryFailureStillRegistersUnseen(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	mu := &sync.RWMutex{}
	d := NewDispatcher(st, failingNotifier{}, mu, 8)
	t.Cleanup(d.Close)

	post := &models.Post{ID: "p1", GroupID: "g1", Author: "alice", Content: "hi"}
	d.FanOutPost(post, []models.Membership{{GroupID: "g1", UserID: "bob"}})
	d.Flush()

	ids, ok, err := st.UnseenPostIDs("bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, ids)
}
