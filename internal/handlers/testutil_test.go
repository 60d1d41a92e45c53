package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/teamup/backend/internal/config"
	"github.com/teamup/backend/internal/database"
	"github.com/teamup/backend/internal/messaging"
	"github.com/teamup/backend/internal/middleware"
	"github.com/teamup/backend/internal/services"
	"github.com/teamup/backend/internal/store"
	"github.com/teamup/backend/pkg/logger"
	"github.com/teamup/backend/pkg/utils"
)

type testEnv struct {
	app      *fiber.App
	registry *services.Registry
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("failed opening in-memory store: %v", err)
	}

	refDB, err := database.Connect(config.RefDataConfig{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("failed opening refdata database: %v", err)
	}

	registry := services.NewRegistry(st, refDB, messaging.LogNotifier{}, 64)

	t.Cleanup(func() {
		registry.Close()
		_ = st.Close()
	})

	groupsHandler := NewGroupsHandler(registry.Groups)
	postsHandler := NewPostsHandler(registry.Posts)
	likesHandler := NewLikesHandler(registry.Likes)
	refDataHandler := NewRefDataHandler(registry.RefData)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.WithUser)

	api := app.Group("/api")

	api.Get("/regions", refDataHandler.Regions)
	api.Get("/regions/:id/localities", refDataHandler.Localities)

	groupRoutes := api.Group("/groups")
	groupRoutes.Post("/", middleware.RequireUser, groupsHandler.Create)
	groupRoutes.Get("/", groupsHandler.Filter)
	groupRoutes.Get("/:id", groupsHandler.Get)
	groupRoutes.Delete("/:id", middleware.RequireUser, groupsHandler.Delete)
	groupRoutes.Get("/:id/subclubs", groupsHandler.SubClubs)
	groupRoutes.Get("/:id/members", groupsHandler.Members)
	groupRoutes.Post("/:id/join", middleware.RequireUser, groupsHandler.Join)
	groupRoutes.Post("/:id/leave", middleware.RequireUser, groupsHandler.Leave)
	groupRoutes.Get("/:id/posts", postsHandler.GroupPosts)

	postRoutes := api.Group("/posts")
	postRoutes.Post("/", middleware.RequireUser, postsHandler.Create)
	postRoutes.Get("/:id", postsHandler.Get)
	postRoutes.Put("/:id", middleware.RequireUser, postsHandler.Update)
	postRoutes.Delete("/:id", middleware.RequireUser, postsHandler.Delete)
	postRoutes.Post("/:id/read", middleware.RequireUser, postsHandler.MarkRead)
	postRoutes.Get("/:id/likes", likesHandler.PostLikes)

	api.Get("/users/:id/posts", postsHandler.UserPosts)

	likeRoutes := api.Group("/likes")
	likeRoutes.Post("/", middleware.RequireUser, likesHandler.Like)
	likeRoutes.Delete("/", middleware.RequireUser, likesHandler.Unlike)

	meRoutes := api.Group("/me", middleware.RequireUser)
	meRoutes.Get("/groups", groupsHandler.MyGroups)
	meRoutes.Get("/posts", postsHandler.MyPosts)
	meRoutes.Get("/unseen-posts", postsHandler.Unseen)
	meRoutes.Get("/likes", likesHandler.MyLikes)

	return &testEnv{app: app, registry: registry}
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID)
	if err != nil {
		t.Fatalf("failed generating token: %v", err)
	}
	return token
}

func performJSONRequest(t *testing.T, env *testEnv, method, path, userID string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed encoding request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, raw)
	}
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed decoding response body: %v", err)
	}
	return out
}

func dataMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := decodeJSONMap(t, resp)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %v", body)
	}
	return data
}

func dataList(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()
	body := decodeJSONMap(t, resp)
	data, ok := body["data"].([]interface{})
	if !ok {
		t.Fatalf("response data is not a list: %v", body)
	}
	return data
}
