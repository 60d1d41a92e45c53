package store

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/teamup/backend/internal/models"
)

func (s *Store) GetGroup(id string) (*models.Group, error) {
	var g models.Group
	if err := s.get(groupKey(id), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) PutGroup(b *pebble.Batch, g *models.Group) error {
	return set(b, groupKey(g.ID), g)
}

func (s *Store) DeleteGroup(b *pebble.Batch, id string) error {
	return b.Delete(groupKey(id), nil)
}

// ScanGroups walks the whole group bucket. The group population is small
// (one per locality/sport pair) so a full scan backs filtering and sub-club
// listing.
func (s *Store) ScanGroups() ([]models.Group, error) {
	lower, upper := prefixBounds(prefixGroup)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var groups []models.Group
	for iter.First(); iter.Valid(); iter.Next() {
		var g models.Group
		if err := json.Unmarshal(iter.Value(), &g); err != nil {
			return nil, fmt.Errorf("store: decode %s: %w", iter.Key(), err)
		}
		groups = append(groups, g)
	}
	return groups, iter.Error()
}
