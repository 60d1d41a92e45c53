package handlers

import (
	"net/http"
	"testing"
)

func setupGroupWithMembers(t *testing.T, env *testEnv) string {
	t.Helper()

	resp := performJSONRequest(t, env, http.MethodPost, "/api/groups", "alice", createGroupPayload("Ahly Fans"))
	assertStatus(t, resp, http.StatusCreated)
	groupID := "zamalek-ahly-fans-football-group"

	resp = performJSONRequest(t, env, http.MethodPost, "/api/groups/"+groupID+"/join", "bob", nil)
	assertStatus(t, resp, http.StatusOK)

	return groupID
}

func TestCreatePostEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)

	resp := performJSONRequest(t, env, http.MethodPost, "/api/posts", "alice", map[string]interface{}{
		"groupID": groupID,
		"content": "kickoff at 7",
	})
	assertStatus(t, resp, http.StatusCreated)

	data := dataMap(t, resp)
	if data["author"] != "alice" {
		t.Fatalf("unexpected author: %v", data["author"])
	}
	if data["groupID"] != groupID {
		t.Fatalf("unexpected group: %v", data["groupID"])
	}
}

func TestCreatePostRequiresMembershipEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)

	resp := performJSONRequest(t, env, http.MethodPost, "/api/posts", "mallory", map[string]interface{}{
		"groupID": groupID,
		"content": "let me in",
	})
	assertStatus(t, resp, http.StatusForbidden)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)

	resp := performJSONRequest(t, env, http.MethodPost, "/api/posts", "", map[string]interface{}{
		"groupID": groupID,
		"content": "anonymous",
	})
	assertStatus(t, resp, http.StatusUnauthorized)
}

func createPost(t *testing.T, env *testEnv, groupID, author, content string) string {
	t.Helper()
	resp := performJSONRequest(t, env, http.MethodPost, "/api/posts", author, map[string]interface{}{
		"groupID": groupID,
		"content": content,
	})
	assertStatus(t, resp, http.StatusCreated)
	id, ok := dataMap(t, resp)["id"].(string)
	if !ok || id == "" {
		t.Fatal("post id missing from response")
	}
	return id
}

func TestUpdatePostEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)
	postID := createPost(t, env, groupID, "alice", "kickoff at 7")

	resp := performJSONRequest(t, env, http.MethodPut, "/api/posts/"+postID, "bob", map[string]interface{}{
		"content": "hijacked",
	})
	assertStatus(t, resp, http.StatusForbidden)

	resp = performJSONRequest(t, env, http.MethodPut, "/api/posts/"+postID, "alice", map[string]interface{}{
		"content": "kickoff moved to 8",
	})
	assertStatus(t, resp, http.StatusOK)
	if got := dataMap(t, resp)["content"]; got != "kickoff moved to 8" {
		t.Fatalf("unexpected content: %v", got)
	}

	resp = performJSONRequest(t, env, http.MethodPut, "/api/posts/"+postID, "alice", map[string]interface{}{})
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestDeletePostEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)
	postID := createPost(t, env, groupID, "alice", "kickoff at 7")

	resp := performJSONRequest(t, env, http.MethodDelete, "/api/posts/"+postID, "bob", nil)
	assertStatus(t, resp, http.StatusForbidden)

	resp = performJSONRequest(t, env, http.MethodDelete, "/api/posts/"+postID, "alice", nil)
	assertStatus(t, resp, http.StatusOK)

	resp = performJSONRequest(t, env, http.MethodGet, "/api/posts/"+postID, "", nil)
	assertStatus(t, resp, http.StatusNotFound)
}

func TestGroupPostsVisibility(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)
	createPost(t, env, groupID, "alice", "kickoff at 7")

	resp := performJSONRequest(t, env, http.MethodGet, "/api/groups/"+groupID+"/posts", "bob", nil)
	assertStatus(t, resp, http.StatusOK)
	if got := len(dataList(t, resp)); got != 1 {
		t.Fatalf("expected 1 post for member, got %d", got)
	}

	// Non-members get an empty list, not an error.
	resp = performJSONRequest(t, env, http.MethodGet, "/api/groups/"+groupID+"/posts", "mallory", nil)
	assertStatus(t, resp, http.StatusOK)
	if got := len(dataList(t, resp)); got != 0 {
		t.Fatalf("expected empty list for non-member, got %d", got)
	}
}

func TestUnseenAndMarkReadEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)
	postID := createPost(t, env, groupID, "alice", "kickoff at 7")

	env.registry.Dispatcher.Flush()

	resp := performJSONRequest(t, env, http.MethodGet, "/api/me/unseen-posts", "bob", nil)
	assertStatus(t, resp, http.StatusOK)
	if got := len(dataList(t, resp)); got != 1 {
		t.Fatalf("expected 1 unseen post, got %d", got)
	}

	resp = performJSONRequest(t, env, http.MethodPost, "/api/posts/"+postID+"/read", "bob", nil)
	assertStatus(t, resp, http.StatusOK)

	resp = performJSONRequest(t, env, http.MethodGet, "/api/me/unseen-posts", "bob", nil)
	assertStatus(t, resp, http.StatusOK)
	if got := len(dataList(t, resp)); got != 0 {
		t.Fatalf("expected 0 unseen posts after read, got %d", got)
	}

	// A user who never received a post has no queue at all.
	resp = performJSONRequest(t, env, http.MethodPost, "/api/posts/"+postID+"/read", "mallory", nil)
	assertStatus(t, resp, http.StatusNotFound)
}

func TestUserPostsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	groupID := setupGroupWithMembers(t, env)
	createPost(t, env, groupID, "alice", "first")
	createPost(t, env, groupID, "alice", "second")

	resp := performJSONRequest(t, env, http.MethodGet, "/api/users/alice/posts", "", nil)
	assertStatus(t, resp, http.StatusOK)
	if got := len(dataList(t, resp)); got != 2 {
		t.Fatalf("expected 2 posts, got %d", got)
	}

	resp = performJSONRequest(t, env, http.MethodGet, "/api/me/posts", "alice", nil)
	assertStatus(t, resp, http.StatusOK)
	if got := len(dataList(t, resp)); got != 2 {
		t.Fatalf("expected 2 posts, got %d", got)
	}
}
