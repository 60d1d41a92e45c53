package store

import (
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/teamup/backend/internal/models"
)

func (s *Store) PostLikes(postID string) ([]models.Like, error) {
	return s.likeList(postLikesKey(postID))
}

func (s *Store) PutPostLikes(b *pebble.Batch, postID string, likes []models.Like) error {
	return set(b, postLikesKey(postID), likes)
}

func (s *Store) DeletePostLikes(b *pebble.Batch, postID string) error {
	return b.Delete(postLikesKey(postID), nil)
}

func (s *Store) UserLikes(userID string) ([]models.Like, error) {
	return s.likeList(userLikesKey(userID))
}

func (s *Store) PutUserLikes(b *pebble.Batch, userID string, likes []models.Like) error {
	return set(b, userLikesKey(userID), likes)
}

func (s *Store) likeList(key []byte) ([]models.Like, error) {
	var likes []models.Like
	if err := s.get(key, &likes); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return likes, nil
}
