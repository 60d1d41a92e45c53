package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/store"
	"github.com/teamup/backend/pkg/logger"
)

// Notifier is the outbound notification channel. Delivery is best effort:
// the dispatcher logs failures and moves on, and no mutation is ever rolled
// back because a notification could not be sent.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

type job interface {
	run(d *Dispatcher)
}

// Dispatcher is the deferred side channel between committed social mutations
// and their user-visible notifications. Triggering operations enqueue a job
// after their batch commits; a single worker drains the queue strictly
// afterwards, so the unseen-post registration of a post fan-out is never part
// of the creating request's atomic step.
type Dispatcher struct {
	store    *store.Store
	notifier Notifier
	mu       *sync.RWMutex
	queue    chan job
	done     chan struct{}
}

func NewDispatcher(st *store.Store, notifier Notifier, mu *sync.RWMutex, queueSize int) *Dispatcher {
	d := &Dispatcher{
		store:    st,
		notifier: notifier,
		mu:       mu,
		queue:    make(chan job, queueSize),
		done:     make(chan struct{}),
	}
	go d.drain()
	return d
}

func (d *Dispatcher) drain() {
	defer close(d.done)
	for j := range d.queue {
		j.run(d)
	}
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.queue <- j:
	default:
		logger.Warn("dispatch_queue_full", map[string]interface{}{
			"dropped": true,
		})
	}
}

// NotifyAsync schedules a single best-effort notification.
func (d *Dispatcher) NotifyAsync(n models.Notification) {
	d.enqueue(notifyJob{notification: n})
}

// FanOutPost schedules the post-creation fan-out over a member snapshot
// taken while the creating batch was being built.
func (d *Dispatcher) FanOutPost(post *models.Post, members []models.Membership) {
	d.enqueue(fanOutJob{post: *post, members: members})
}

// Flush blocks until every job enqueued before the call has run.
func (d *Dispatcher) Flush() {
	flushed := make(chan struct{})
	d.queue <- flushJob{flushed: flushed}
	<-flushed
}

func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

type notifyJob struct {
	notification models.Notification
}

func (j notifyJob) run(d *Dispatcher) {
	if err := d.notifier.Notify(context.Background(), j.notification); err != nil {
		logger.Warn("notification_send_failed", map[string]interface{}{
			"recipient": j.notification.Recipient,
			"error":     err.Error(),
		})
	}
}

type fanOutJob struct {
	post    models.Post
	members []models.Membership
}

func (j fanOutJob) run(d *Dispatcher) {
	preview := postPreview(&j.post)
	for _, member := range j.members {
		if member.UserID == j.post.Author {
			continue
		}

		notification := models.Notification{
			Recipient: member.UserID,
			Type:      models.NotificationMessage,
			Content:   preview,
		}
		if err := d.notifier.Notify(context.Background(), notification); err != nil {
			logger.Warn("notification_send_failed", map[string]interface{}{
				"recipient": member.UserID,
				"post_id":   j.post.ID,
				"error":     err.Error(),
			})
		}

		if err := d.registerUnseen(member.UserID, j.post.ID); err != nil {
			logger.Error("unseen_post_register_failed", err, map[string]interface{}{
				"recipient": member.UserID,
				"post_id":   j.post.ID,
			})
		}
	}
}

func (d *Dispatcher) registerUnseen(userID, postID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids, _, err := d.store.UnseenPostIDs(userID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == postID {
			return nil
		}
	}

	b := d.store.NewBatch()
	if err := d.store.PutUnseenPostIDs(b, userID, append(ids, postID)); err != nil {
		return err
	}
	return d.store.Commit(b)
}

func postPreview(p *models.Post) string {
	content := p.Content
	if len(content) > 50 {
		content = content[:50]
	}
	return fmt.Sprintf("New post in group %s : %s...", p.GroupID, content)
}

type flushJob struct {
	flushed chan struct{}
}

func (j flushJob) run(d *Dispatcher) {
	close(j.flushed)
}
