package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/store"
	"github.com/teamup/backend/pkg/logger"
)

// GroupService owns the group records and the bidirectional membership index.
// Every mutation validates fully, then stages its writes on one batch, so a
// failed call leaves no partial state behind.
type GroupService struct {
	store    *store.Store
	refdata  *RefDataService
	dispatch *Dispatcher
	mu       *sync.RWMutex
}

func NewGroupService(st *store.Store, refdata *RefDataService, dispatch *Dispatcher, mu *sync.RWMutex) *GroupService {
	return &GroupService{store: st, refdata: refdata, dispatch: dispatch, mu: mu}
}

type CreateGroupParams struct {
	Name          string
	RegionID      uint8
	LocalityID    uint16
	Sport         models.Sport
	Description   string
	Image         []byte
	ParentGroupID *string
	Public        bool
}

func (s *GroupService) Create(params CreateGroupParams, caller string) (*models.Group, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, fmt.Errorf("group name is required: %w", ErrInvalidInput)
	}
	if !params.Sport.Valid() {
		return nil, fmt.Errorf("unknown sport %q: %w", params.Sport, ErrInvalidInput)
	}

	// External lookup happens before the first write of the atomic step.
	locality, err := s.refdata.Lookup(params.RegionID, params.LocalityID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if params.ParentGroupID != nil {
		parent, err := s.store.GetGroup(*params.ParentGroupID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("parent group %s: %w", *params.ParentGroupID, ErrNotFound)
			}
			return nil, err
		}
		if parent.IsSubClub() {
			return nil, fmt.Errorf("sub-clubs cannot have their own sub-clubs: %w", ErrInvalidInput)
		}
		members, err := s.store.GroupMembers(parent.ID)
		if err != nil {
			return nil, err
		}
		if !containsMember(members, caller) {
			return nil, fmt.Errorf("user %s is not a member of parent group %s: %w", caller, parent.ID, ErrForbidden)
		}
	}

	id := deriveGroupID(locality.Slug, params.Name, params.Sport, params.ParentGroupID != nil)
	if _, err := s.store.GetGroup(id); err == nil {
		return nil, fmt.Errorf("group %s: %w", id, ErrAlreadyExists)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	group := &models.Group{
		ID:            id,
		RegionID:      params.RegionID,
		LocalityID:    params.LocalityID,
		Name:          params.Name,
		Sport:         params.Sport,
		Description:   params.Description,
		Image:         params.Image,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     caller,
		ParentGroupID: params.ParentGroupID,
		Public:        params.Public,
	}

	b := s.store.NewBatch()
	if err := s.store.PutGroup(b, group); err != nil {
		return nil, err
	}
	if err := s.store.Commit(b); err != nil {
		return nil, err
	}

	if err := s.joinLocked(group, caller); err != nil {
		return nil, err
	}

	logger.InfoWithUser(caller, "group_created", map[string]interface{}{
		"group_id": group.ID,
		"sub_club": group.IsSubClub(),
	})

	return group, nil
}

func (s *GroupService) Get(groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getGroup(groupID)
}

func (s *GroupService) Join(groupID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	return s.joinLocked(group, userID)
}

// joinLocked applies the join algorithm: parent gating, duplicate check, then
// both membership index sides plus the member counter in one batch. Callers
// hold the write lock.
func (s *GroupService) joinLocked(group *models.Group, userID string) error {
	if group.ParentGroupID != nil {
		parentMembers, err := s.store.GroupMembers(*group.ParentGroupID)
		if err != nil {
			return err
		}
		if !containsMember(parentMembers, userID) {
			return fmt.Errorf("user %s is not a member of parent group %s: %w", userID, *group.ParentGroupID, ErrForbidden)
		}
	}

	members, err := s.store.GroupMembers(group.ID)
	if err != nil {
		return err
	}
	if containsMember(members, userID) {
		return fmt.Errorf("user %s is already a member of group %s: %w", userID, group.ID, ErrAlreadyExists)
	}

	userGroups, err := s.store.UserGroups(userID)
	if err != nil {
		return err
	}

	members = append(members, models.Membership{
		GroupID:  group.ID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	})
	if !containsString(userGroups, group.ID) {
		userGroups = append(userGroups, group.ID)
	}
	group.MemberCount++

	b := s.store.NewBatch()
	if err := s.store.PutGroupMembers(b, group.ID, members); err != nil {
		return err
	}
	if err := s.store.PutUserGroups(b, userID, userGroups); err != nil {
		return err
	}
	if err := s.store.PutGroup(b, group); err != nil {
		return err
	}
	if err := s.store.Commit(b); err != nil {
		return err
	}

	s.dispatch.NotifyAsync(models.Notification{
		Recipient: userID,
		Type:      models.NotificationMessage,
		Content:   fmt.Sprintf("Welcome to %s.", group.Name),
	})

	return nil
}

func (s *GroupService) Leave(groupID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy == userID {
		return fmt.Errorf("the group creator cannot leave %s: %w", groupID, ErrForbidden)
	}

	members, err := s.store.GroupMembers(groupID)
	if err != nil {
		return err
	}
	if !containsMember(members, userID) {
		return fmt.Errorf("user %s is not a member of group %s: %w", userID, groupID, ErrNotFound)
	}

	userGroups, err := s.store.UserGroups(userID)
	if err != nil {
		return err
	}

	members = removeMember(members, userID)
	userGroups = removeString(userGroups, groupID)
	if group.MemberCount > 0 {
		group.MemberCount--
	}

	b := s.store.NewBatch()
	if err := s.store.PutGroupMembers(b, groupID, members); err != nil {
		return err
	}
	if err := s.store.PutUserGroups(b, userID, userGroups); err != nil {
		return err
	}
	if err := s.store.PutGroup(b, group); err != nil {
		return err
	}
	return s.store.Commit(b)
}

func (s *GroupService) Delete(groupID, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}

	authorized := group.CreatedBy == caller
	if !authorized && group.IsSubClub() {
		parent, err := s.getGroup(*group.ParentGroupID)
		if err == nil && parent.CreatedBy == caller {
			authorized = true
		}
	}
	if !authorized {
		return fmt.Errorf("only the group creator can delete group %s: %w", groupID, ErrForbidden)
	}

	if err := s.deleteLocked(group); err != nil {
		return err
	}

	logger.InfoWithUser(caller, "group_deleted", map[string]interface{}{
		"group_id": groupID,
	})
	return nil
}

// deleteLocked tears a group down post-order: sub-clubs first (each as its
// own committed step, authorized by the cascade rather than by the original
// caller), then the group's posts with every index entry hanging off them,
// then the membership index, then the record itself.
func (s *GroupService) deleteLocked(group *models.Group) error {
	all, err := s.store.ScanGroups()
	if err != nil {
		return err
	}
	for i := range all {
		child := all[i]
		if child.ParentGroupID != nil && *child.ParentGroupID == group.ID {
			if err := s.deleteLocked(&child); err != nil {
				return err
			}
		}
	}

	members, err := s.store.GroupMembers(group.ID)
	if err != nil {
		return err
	}
	postIDs, err := s.store.GroupPostIDs(group.ID)
	if err != nil {
		return err
	}

	b := s.store.NewBatch()

	// Lists touched more than once in this step are loaded once, mutated in
	// memory and staged at the end; batch writes are not visible to reads.
	userPostIDs := map[string][]string{}
	userLikes := map[string][]models.Like{}

	for _, postID := range postIDs {
		post, err := s.store.GetPost(postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return err
		}

		if err := s.store.DeletePost(b, postID); err != nil {
			return err
		}
		if err := s.store.DeletePostCommentIDs(b, postID); err != nil {
			return err
		}

		if _, ok := userPostIDs[post.Author]; !ok {
			ids, err := s.store.UserPostIDs(post.Author)
			if err != nil {
				return err
			}
			userPostIDs[post.Author] = ids
		}
		userPostIDs[post.Author] = removeString(userPostIDs[post.Author], postID)

		likes, err := s.store.PostLikes(postID)
		if err != nil {
			return err
		}
		if err := s.store.DeletePostLikes(b, postID); err != nil {
			return err
		}
		for _, like := range likes {
			if _, ok := userLikes[like.UserID]; !ok {
				existing, err := s.store.UserLikes(like.UserID)
				if err != nil {
					return err
				}
				userLikes[like.UserID] = existing
			}
			userLikes[like.UserID] = removeLike(userLikes[like.UserID], models.LikeTargetPost, postID)
		}
	}

	for userID, ids := range userPostIDs {
		if err := s.store.PutUserPostIDs(b, userID, ids); err != nil {
			return err
		}
	}
	for userID, likes := range userLikes {
		if err := s.store.PutUserLikes(b, userID, likes); err != nil {
			return err
		}
	}

	if len(postIDs) > 0 {
		deleted := map[string]struct{}{}
		for _, id := range postIDs {
			deleted[id] = struct{}{}
		}
		for _, member := range members {
			unseen, ok, err := s.store.UnseenPostIDs(member.UserID)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			kept := make([]string, 0, len(unseen))
			for _, id := range unseen {
				if _, gone := deleted[id]; !gone {
					kept = append(kept, id)
				}
			}
			if len(kept) != len(unseen) {
				if err := s.store.PutUnseenPostIDs(b, member.UserID, kept); err != nil {
					return err
				}
			}
		}
	}

	for _, member := range members {
		userGroups, err := s.store.UserGroups(member.UserID)
		if err != nil {
			return err
		}
		if err := s.store.PutUserGroups(b, member.UserID, removeString(userGroups, group.ID)); err != nil {
			return err
		}
	}

	if err := s.store.DeleteGroupMembers(b, group.ID); err != nil {
		return err
	}
	if err := s.store.DeleteGroupPostIDs(b, group.ID); err != nil {
		return err
	}
	if err := s.store.DeleteGroup(b, group.ID); err != nil {
		return err
	}

	return s.store.Commit(b)
}

// Filter returns the public top-level groups matching the filter. Non-public
// groups stay invisible regardless of the caller.
func (s *GroupService) Filter(filter models.GroupFilter) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := s.store.ScanGroups()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Group, 0)
	for i := range all {
		g := all[i]
		if !g.Public || g.IsSubClub() {
			continue
		}
		if filter.Matches(&g) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

// SubClubs lists the public children of a group. A missing parent yields an
// empty list, matching the filter surface.
func (s *GroupService) SubClubs(groupID string) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := s.store.ScanGroups()
	if err != nil {
		return nil, err
	}

	clubs := make([]models.Group, 0)
	for i := range all {
		g := all[i]
		if g.Public && g.ParentGroupID != nil && *g.ParentGroupID == groupID {
			clubs = append(clubs, g)
		}
	}
	return clubs, nil
}

func (s *GroupService) Members(groupID string) ([]models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members, err := s.store.GroupMembers(groupID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.Membership{}
	}
	return members, nil
}

// MemberGroups returns the groups a user belongs to, resolved through the
// user-side index.
func (s *GroupService) MemberGroups(userID string) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.store.UserGroups(userID)
	if err != nil {
		return nil, err
	}

	groups := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.store.GetGroup(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, nil
}

func (s *GroupService) IsMember(groupID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memberOf(groupID, userID)
}

// memberOf answers through the user-side index; callers hold the lock.
func (s *GroupService) memberOf(groupID, userID string) (bool, error) {
	userGroups, err := s.store.UserGroups(userID)
	if err != nil {
		return false, err
	}
	return containsString(userGroups, groupID), nil
}

func (s *GroupService) getGroup(groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		return nil, err
	}
	return group, nil
}

// deriveGroupID builds the deterministic slug id: locality, kebab-cased
// name, sport, and a group/club suffix depending on nesting.
func deriveGroupID(localitySlug, name string, sport models.Sport, subClub bool) string {
	kind := "group"
	if subClub {
		kind = "club"
	}
	return fmt.Sprintf("%s-%s-%s-%s", localitySlug, slugify(name), sport, kind)
}

func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func containsMember(members []models.Membership, userID string) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func removeMember(members []models.Membership, userID string) []models.Membership {
	kept := make([]models.Membership, 0, len(members))
	for _, m := range members {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	return kept
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func removeString(list []string, v string) []string {
	kept := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			kept = append(kept, item)
		}
	}
	return kept
}
