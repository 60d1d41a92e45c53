package services

import (
	"sync"

	"github.com/teamup/backend/internal/store"
	"gorm.io/gorm"
)

// Registry wires the engines around one store and one mutation lock. The
// lock serializes every read-modify-write sequence across engines and the
// dispatcher worker, standing in for the run-to-completion scheduling the
// index layout assumes: within a locked section no other request observes
// intermediate state.
type Registry struct {
	Groups     *GroupService
	Posts      *PostService
	Likes      *LikeService
	RefData    *RefDataService
	Dispatcher *Dispatcher
}

func NewRegistry(st *store.Store, refDB *gorm.DB, notifier Notifier, queueSize int) *Registry {
	mu := &sync.RWMutex{}
	refdata := NewRefDataService(refDB)
	dispatch := NewDispatcher(st, notifier, mu, queueSize)
	groups := NewGroupService(st, refdata, dispatch, mu)

	return &Registry{
		Groups:     groups,
		Posts:      NewPostService(st, groups, dispatch, mu),
		Likes:      NewLikeService(st, groups, mu),
		RefData:    refdata,
		Dispatcher: dispatch,
	}
}

// Close drains the dispatcher; pending jobs run before it returns.
func (r *Registry) Close() {
	r.Dispatcher.Close()
}
