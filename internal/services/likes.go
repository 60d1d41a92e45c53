package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/store"
)

// LikeService owns the like records and both like indices, plus the
// denormalized like counter on each post. Comment targets are accepted but
// perform no state change until the comment subsystem lands.
type LikeService struct {
	store  *store.Store
	groups *GroupService
	mu     *sync.RWMutex
}

func NewLikeService(st *store.Store, groups *GroupService, mu *sync.RWMutex) *LikeService {
	return &LikeService{store: st, groups: groups, mu: mu}
}

func (s *LikeService) Like(targetType models.LikeTargetType, targetID, caller string) error {
	if !targetType.Valid() || targetID == "" {
		return fmt.Errorf("like target is required: %w", ErrInvalidInput)
	}
	if targetType == models.LikeTargetComment {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.store.GetPost(targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("cannot like unknown post %s: %w", targetID, ErrNotFound)
		}
		return err
	}

	isMember, err := s.groups.memberOf(post.GroupID, caller)
	if err != nil {
		return err
	}
	if !isMember {
		return fmt.Errorf("user %s is not a member of group %s: %w", caller, post.GroupID, ErrForbidden)
	}

	postLikes, err := s.store.PostLikes(targetID)
	if err != nil {
		return err
	}
	for _, l := range postLikes {
		if l.UserID == caller {
			return fmt.Errorf("user %s already liked post %s: %w", caller, targetID, ErrAlreadyExists)
		}
	}

	userLikes, err := s.store.UserLikes(caller)
	if err != nil {
		return err
	}

	like := models.Like{
		TargetType: models.LikeTargetPost,
		TargetID:   targetID,
		UserID:     caller,
		LikedAt:    time.Now().UTC(),
	}
	postLikes = append(postLikes, like)
	if !containsLike(userLikes, models.LikeTargetPost, targetID) {
		userLikes = append(userLikes, like)
	}
	post.LikeCount++

	b := s.store.NewBatch()
	if err := s.store.PutPostLikes(b, targetID, postLikes); err != nil {
		return err
	}
	if err := s.store.PutUserLikes(b, caller, userLikes); err != nil {
		return err
	}
	if err := s.store.PutPost(b, post); err != nil {
		return err
	}
	return s.store.Commit(b)
}

// Unlike is a silent no-op when no matching like exists; the post counter is
// decremented only when a like was actually removed, so repeated calls never
// drive it negative.
func (s *LikeService) Unlike(targetType models.LikeTargetType, targetID, caller string) error {
	if !targetType.Valid() || targetID == "" {
		return fmt.Errorf("like target is required: %w", ErrInvalidInput)
	}
	if targetType == models.LikeTargetComment {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.store.GetPost(targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("cannot unlike unknown post %s: %w", targetID, ErrNotFound)
		}
		return err
	}

	postLikes, err := s.store.PostLikes(targetID)
	if err != nil {
		return err
	}
	userLikes, err := s.store.UserLikes(caller)
	if err != nil {
		return err
	}

	removed := false
	for _, l := range postLikes {
		if l.UserID == caller {
			removed = true
			break
		}
	}

	b := s.store.NewBatch()
	staged := false

	if removed {
		kept := make([]models.Like, 0, len(postLikes))
		for _, l := range postLikes {
			if l.UserID != caller {
				kept = append(kept, l)
			}
		}
		if err := s.store.PutPostLikes(b, targetID, kept); err != nil {
			return err
		}
		if post.LikeCount > 0 {
			post.LikeCount--
		}
		if err := s.store.PutPost(b, post); err != nil {
			return err
		}
		staged = true
	}

	if containsLike(userLikes, models.LikeTargetPost, targetID) {
		if err := s.store.PutUserLikes(b, caller, removeLike(userLikes, models.LikeTargetPost, targetID)); err != nil {
			return err
		}
		staged = true
	}

	if !staged {
		return nil
	}
	return s.store.Commit(b)
}

func (s *LikeService) UserLikes(userID string) ([]models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likes, err := s.store.UserLikes(userID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []models.Like{}
	}
	return likes, nil
}

func (s *LikeService) PostLikes(postID string) ([]models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likes, err := s.store.PostLikes(postID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []models.Like{}
	}
	return likes, nil
}

func containsLike(likes []models.Like, targetType models.LikeTargetType, targetID string) bool {
	for _, l := range likes {
		if l.TargetType == targetType && l.TargetID == targetID {
			return true
		}
	}
	return false
}

func removeLike(likes []models.Like, targetType models.LikeTargetType, targetID string) []models.Like {
	kept := make([]models.Like, 0, len(likes))
	for _, l := range likes {
		if l.TargetType != targetType || l.TargetID != targetID {
			kept = append(kept, l)
		}
	}
	return kept
}
