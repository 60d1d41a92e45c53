package store

// One prefix per bucket. The layout is part of the persisted format and must
// stay stable across releases.
const (
	prefixGroup        = "g/"  // group id -> Group record
	prefixGroupMembers = "gm/" // group id -> []Membership
	prefixUserGroups   = "ug/" // user id -> []group id
	prefixPost         = "p/"  // post id -> Post record
	prefixGroupPosts   = "pg/" // group id -> []post id
	prefixUserPosts    = "pu/" // user id -> []post id
	prefixPostComments = "cp/" // post id -> []comment id
	prefixUnseenPosts  = "up/" // user id -> []post id not yet read
	prefixPostLikes    = "lp/" // post id -> []Like
	prefixUserLikes    = "lu/" // user id -> []Like
)

func groupKey(id string) []byte        { return []byte(prefixGroup + id) }
func groupMembersKey(id string) []byte { return []byte(prefixGroupMembers + id) }
func userGroupsKey(id string) []byte   { return []byte(prefixUserGroups + id) }
func postKey(id string) []byte         { return []byte(prefixPost + id) }
func groupPostsKey(id string) []byte   { return []byte(prefixGroupPosts + id) }
func userPostsKey(id string) []byte    { return []byte(prefixUserPosts + id) }
func postCommentsKey(id string) []byte { return []byte(prefixPostComments + id) }
func unseenPostsKey(id string) []byte  { return []byte(prefixUnseenPosts + id) }
func postLikesKey(id string) []byte    { return []byte(prefixPostLikes + id) }
func userLikesKey(id string) []byte    { return []byte(prefixUserLikes + id) }

// prefixBounds returns iterator bounds covering every key under prefix.
func prefixBounds(prefix string) (lower, upper []byte) {
	lower = []byte(prefix)
	upper = []byte(prefix)
	upper[len(upper)-1]++
	return lower, upper
}
