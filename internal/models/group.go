package models

import "time"

// Group is a locality-bound sports community. A group with a ParentGroupID is
// a sub-club; sub-clubs cannot have children of their own.
type Group struct {
	ID            string    `json:"id"`
	RegionID      uint8     `json:"regionID"`
	LocalityID    uint16    `json:"localityID"`
	Name          string    `json:"name"`
	Sport         Sport     `json:"sport"`
	Description   string    `json:"description"`
	Image         []byte    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	ParentGroupID *string   `json:"parentGroupID,omitempty"`
	Public        bool      `json:"public"`

	// Denormalized counters, kept in lock-step with the membership and
	// post indices.
	MemberCount uint64 `json:"memberCount"`
	PostCount   uint64 `json:"postCount"`
}

func (g *Group) IsSubClub() bool {
	return g.ParentGroupID != nil
}

// GroupFilter narrows filter_groups results; nil fields match everything.
type GroupFilter struct {
	RegionID   *uint8  `json:"regionID,omitempty"`
	LocalityID *uint16 `json:"localityID,omitempty"`
	Sport      *Sport  `json:"sport,omitempty"`
}

func (f GroupFilter) Matches(g *Group) bool {
	if f.RegionID != nil && *f.RegionID != g.RegionID {
		return false
	}
	if f.LocalityID != nil && *f.LocalityID != g.LocalityID {
		return false
	}
	if f.Sport != nil && *f.Sport != g.Sport {
		return false
	}
	return true
}
