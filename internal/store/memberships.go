package store

import (
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/teamup/backend/internal/models"
)

// The membership index is bidirectional: gm/ maps a group to its membership
// records, ug/ maps a user to the ids of the groups they joined. Both sides
// are always written inside the same batch.

func (s *Store) GroupMembers(groupID string) ([]models.Membership, error) {
	var members []models.Membership
	if err := s.get(groupMembersKey(groupID), &members); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return members, nil
}

func (s *Store) PutGroupMembers(b *pebble.Batch, groupID string, members []models.Membership) error {
	return set(b, groupMembersKey(groupID), members)
}

func (s *Store) DeleteGroupMembers(b *pebble.Batch, groupID string) error {
	return b.Delete(groupMembersKey(groupID), nil)
}

func (s *Store) UserGroups(userID string) ([]string, error) {
	var ids []string
	if err := s.get(userGroupsKey(userID), &ids); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}

func (s *Store) PutUserGroups(b *pebble.Batch, userID string, groupIDs []string) error {
	return set(b, userGroupsKey(userID), groupIDs)
}
