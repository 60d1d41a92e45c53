package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamup/backend/internal/config"
	"github.com/teamup/backend/internal/database"
	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/store"
	"github.com/teamup/backend/pkg/logger"
)

var loggerOnce sync.Once

// recorderNotifier captures every delivered notification for assertions.
type recorderNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (r *recorderNotifier) Notify(_ context.Context, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recorderNotifier) recipients() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Recipient)
	}
	return out
}

func (r *recorderNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type testEnv struct {
	registry *Registry
	notifier *recorderNotifier
	store    *store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	loggerOnce.Do(logger.Init)

	st, err := store.OpenMemory()
	require.NoError(t, err)

	refDB, err := database.Connect(config.RefDataConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)

	notifier := &recorderNotifier{}
	registry := NewRegistry(st, refDB, notifier, 64)

	t.Cleanup(func() {
		registry.Close()
		_ = st.Close()
	})

	return &testEnv{registry: registry, notifier: notifier, store: st}
}

// mustCreateGroup creates a public football group in Zamalek owned by
// creator. Locality 3 seeds with slug "zamalek".
func (e *testEnv) mustCreateGroup(t *testing.T, name, creator string) *models.Group {
	t.Helper()
	group, err := e.registry.Groups.Create(CreateGroupParams{
		Name:       name,
		RegionID:   1,
		LocalityID: 3,
		Sport:      models.SportFootball,
		Public:     true,
	}, creator)
	require.NoError(t, err)
	return group
}

func (e *testEnv) mustCreateSubClub(t *testing.T, name, parentID, creator string) *models.Group {
	t.Helper()
	group, err := e.registry.Groups.Create(CreateGroupParams{
		Name:          name,
		RegionID:      1,
		LocalityID:    3,
		Sport:         models.SportFootball,
		ParentGroupID: &parentID,
		Public:        true,
	}, creator)
	require.NoError(t, err)
	return group
}

func (e *testEnv) mustCreatePost(t *testing.T, groupID, author, content string) *models.Post {
	t.Helper()
	post, err := e.registry.Posts.Create(CreatePostParams{
		GroupID: groupID,
		Content: content,
	}, author)
	require.NoError(t, err)
	return post
}
