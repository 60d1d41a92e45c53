package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/store"
	"github.com/teamup/backend/pkg/logger"
)

// PostService owns the post records, the group-side and author-side post
// indices and the per-user unseen queues. The fan-out that fills the unseen
// queues runs through the dispatcher after the creating step has committed.
type PostService struct {
	store    *store.Store
	groups   *GroupService
	dispatch *Dispatcher
	mu       *sync.RWMutex
}

func NewPostService(st *store.Store, groups *GroupService, dispatch *Dispatcher, mu *sync.RWMutex) *PostService {
	return &PostService{store: st, groups: groups, dispatch: dispatch, mu: mu}
}

type CreatePostParams struct {
	GroupID string
	Content string
	Images  [][]byte
}

type UpdatePostParams struct {
	Content *string
	Images  *[][]byte
}

func (s *PostService) Create(params CreatePostParams, caller string) (*models.Post, error) {
	params.Content = strings.TrimSpace(params.Content)
	if params.GroupID == "" || params.Content == "" {
		return nil, fmt.Errorf("group id and content are required: %w", ErrInvalidInput)
	}

	// Fresh id from the randomness collaborator, before any write.
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.groups.getGroup(params.GroupID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.GroupMembers(group.ID)
	if err != nil {
		return nil, err
	}
	if !containsMember(members, caller) {
		return nil, fmt.Errorf("user %s is not a member of group %s: %w", caller, group.ID, ErrForbidden)
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        id,
		GroupID:   group.ID,
		Author:    caller,
		Content:   params.Content,
		Images:    params.Images,
		CreatedAt: now,
		UpdatedAt: now,
	}

	groupPosts, err := s.store.GroupPostIDs(group.ID)
	if err != nil {
		return nil, err
	}
	authorPosts, err := s.store.UserPostIDs(caller)
	if err != nil {
		return nil, err
	}
	group.PostCount++

	b := s.store.NewBatch()
	if err := s.store.PutPost(b, post); err != nil {
		return nil, err
	}
	if err := s.store.PutGroupPostIDs(b, group.ID, append(groupPosts, post.ID)); err != nil {
		return nil, err
	}
	if err := s.store.PutUserPostIDs(b, caller, append(authorPosts, post.ID)); err != nil {
		return nil, err
	}
	if err := s.store.PutPostCommentIDs(b, post.ID, []string{}); err != nil {
		return nil, err
	}
	if err := s.store.PutGroup(b, group); err != nil {
		return nil, err
	}
	if err := s.store.Commit(b); err != nil {
		return nil, err
	}

	// Deferred: notifications and unseen registration happen after commit,
	// over the member snapshot taken above.
	s.dispatch.FanOutPost(post, members)

	logger.InfoWithUser(caller, "post_created", map[string]interface{}{
		"post_id":  post.ID,
		"group_id": group.ID,
	})

	return post, nil
}

func (s *PostService) Get(postID string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPost(postID)
}

func (s *PostService) Update(postID string, params UpdatePostParams, caller string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if post.Author != caller {
		return nil, fmt.Errorf("only the author can update post %s: %w", postID, ErrForbidden)
	}
	if params.Content == nil && params.Images == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrInvalidInput)
	}

	if params.Content != nil {
		content := strings.TrimSpace(*params.Content)
		if content == "" {
			return nil, fmt.Errorf("content cannot be empty: %w", ErrInvalidInput)
		}
		post.Content = content
	}
	if params.Images != nil {
		post.Images = *params.Images
	}
	post.UpdatedAt = time.Now().UTC()

	b := s.store.NewBatch()
	if err := s.store.PutPost(b, post); err != nil {
		return nil, err
	}
	if err := s.store.Commit(b); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post from the primary store, both post indices, the
// comment index, every current member's unseen queue and both like indices,
// and decrements the owning group's post counter, all in one step.
func (s *PostService) Delete(postID, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.getPost(postID)
	if err != nil {
		return err
	}
	if post.Author != caller {
		return fmt.Errorf("only the author can delete post %s: %w", postID, ErrForbidden)
	}

	groupPosts, err := s.store.GroupPostIDs(post.GroupID)
	if err != nil {
		return err
	}
	authorPosts, err := s.store.UserPostIDs(post.Author)
	if err != nil {
		return err
	}
	likes, err := s.store.PostLikes(postID)
	if err != nil {
		return err
	}
	members, err := s.store.GroupMembers(post.GroupID)
	if err != nil {
		return err
	}

	b := s.store.NewBatch()
	if err := s.store.DeletePost(b, postID); err != nil {
		return err
	}
	if err := s.store.PutGroupPostIDs(b, post.GroupID, removeString(groupPosts, postID)); err != nil {
		return err
	}
	if err := s.store.PutUserPostIDs(b, post.Author, removeString(authorPosts, postID)); err != nil {
		return err
	}
	if err := s.store.DeletePostCommentIDs(b, postID); err != nil {
		return err
	}

	if err := s.store.DeletePostLikes(b, postID); err != nil {
		return err
	}
	for _, like := range likes {
		userLikes, err := s.store.UserLikes(like.UserID)
		if err != nil {
			return err
		}
		if err := s.store.PutUserLikes(b, like.UserID, removeLike(userLikes, models.LikeTargetPost, postID)); err != nil {
			return err
		}
	}

	for _, member := range members {
		unseen, ok, err := s.store.UnseenPostIDs(member.UserID)
		if err != nil {
			return err
		}
		if !ok || !containsString(unseen, postID) {
			continue
		}
		if err := s.store.PutUnseenPostIDs(b, member.UserID, removeString(unseen, postID)); err != nil {
			return err
		}
	}

	group, err := s.store.GetGroup(post.GroupID)
	if err == nil {
		if group.PostCount > 0 {
			group.PostCount--
		}
		if err := s.store.PutGroup(b, group); err != nil {
			return err
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return s.store.Commit(b)
}

// MarkRead drops the post from the caller's unseen queue. A caller who never
// received any post has no queue at all and gets NotFound; an id already
// absent from an existing queue is a successful no-op.
func (s *PostService) MarkRead(postID, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getPost(postID); err != nil {
		return err
	}

	unseen, ok, err := s.store.UnseenPostIDs(caller)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %s has no unseen posts: %w", caller, ErrNotFound)
	}
	if !containsString(unseen, postID) {
		return nil
	}

	b := s.store.NewBatch()
	if err := s.store.PutUnseenPostIDs(b, caller, removeString(unseen, postID)); err != nil {
		return err
	}
	return s.store.Commit(b)
}

func (s *PostService) Unseen(caller string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, _, err := s.store.UnseenPostIDs(caller)
	if err != nil {
		return nil, err
	}
	return s.resolvePosts(ids)
}

// GroupPosts returns a group's posts for members. Non-members get an empty
// list rather than an error, so membership cannot be probed through error
// codes.
func (s *PostService) GroupPosts(groupID, caller string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	isMember, err := s.groups.memberOf(groupID, caller)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return []models.Post{}, nil
	}

	ids, err := s.store.GroupPostIDs(groupID)
	if err != nil {
		return nil, err
	}
	return s.resolvePosts(ids)
}

func (s *PostService) UserPosts(userID string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.store.UserPostIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.resolvePosts(ids)
}

func (s *PostService) resolvePosts(ids []string) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.store.GetPost(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

func (s *PostService) getPost(postID string) (*models.Post, error) {
	post, err := s.store.GetPost(postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, err
	}
	return post, nil
}
