package store

import (
	"errors"

	"github.com/cockroachdb/pebble"
)

// UnseenPostIDs reads a user's unseen-post queue. ok reports whether the
// bucket exists at all: mark_post_as_read treats a user who never received a
// post differently from one whose queue is merely empty.
func (s *Store) UnseenPostIDs(userID string) (ids []string, ok bool, err error) {
	if err := s.get(unseenPostsKey(userID), &ids); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return ids, true, nil
}

func (s *Store) PutUnseenPostIDs(b *pebble.Batch, userID string, ids []string) error {
	return set(b, unseenPostsKey(userID), ids)
}
