package store

import (
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/teamup/backend/internal/models"
)

func (s *Store) GetPost(id string) (*models.Post, error) {
	var p models.Post
	if err := s.get(postKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) PutPost(b *pebble.Batch, p *models.Post) error {
	return set(b, postKey(p.ID), p)
}

func (s *Store) DeletePost(b *pebble.Batch, id string) error {
	return b.Delete(postKey(id), nil)
}

func (s *Store) GroupPostIDs(groupID string) ([]string, error) {
	return s.idList(groupPostsKey(groupID))
}

func (s *Store) PutGroupPostIDs(b *pebble.Batch, groupID string, ids []string) error {
	return set(b, groupPostsKey(groupID), ids)
}

func (s *Store) DeleteGroupPostIDs(b *pebble.Batch, groupID string) error {
	return b.Delete(groupPostsKey(groupID), nil)
}

func (s *Store) UserPostIDs(userID string) ([]string, error) {
	return s.idList(userPostsKey(userID))
}

func (s *Store) PutUserPostIDs(b *pebble.Batch, userID string, ids []string) error {
	return set(b, userPostsKey(userID), ids)
}

func (s *Store) PostCommentIDs(postID string) ([]string, error) {
	return s.idList(postCommentsKey(postID))
}

func (s *Store) PutPostCommentIDs(b *pebble.Batch, postID string, ids []string) error {
	return set(b, postCommentsKey(postID), ids)
}

func (s *Store) DeletePostCommentIDs(b *pebble.Batch, postID string) error {
	return b.Delete(postCommentsKey(postID), nil)
}

func (s *Store) idList(key []byte) ([]string, error) {
	var ids []string
	if err := s.get(key, &ids); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}
