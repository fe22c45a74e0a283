// Package scheduler drives the deferred-publication state machine:
// a post created with a future scheduled instant stays unpublished
// until that instant elapses, then is flipped exactly once.
package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/linkigram/backend/internal/repositories"
)

// Scheduler holds one pending timer per scheduled post. The pending
// transition itself is persisted on the post row (scheduled_at +
// is_published), so timers can be rebuilt after a restart; the
// conditional update in MarkPublished keeps the flip exactly-once even
// if a timer and the startup scan race.
type Scheduler struct {
	posts repositories.PostRepository

	mu     sync.Mutex
	timers map[uint]*time.Timer
	closed bool
}

// New creates a Scheduler over the given post repository.
func New(posts repositories.PostRepository) *Scheduler {
	return &Scheduler{
		posts:  posts,
		timers: make(map[uint]*time.Timer),
	}
}

// Start reconciles pending transitions left over from a previous run:
// overdue posts are published immediately, future ones get their
// timers re-armed.
func (s *Scheduler) Start() error {
	pending, err := s.posts.GetPendingScheduled()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, p := range pending {
		if p.ScheduledAt == nil {
			continue
		}
		if !p.ScheduledAt.After(now) {
			s.publish(p.ID)
			continue
		}
		s.Schedule(p.ID, *p.ScheduledAt)
	}

	if len(pending) > 0 {
		log.Printf("Scheduler reconciled %d pending post(s).", len(pending))
	}
	return nil
}

// Schedule arms a timer that publishes the post when at elapses. An
// instant already in the past fires immediately.
func (s *Scheduler) Schedule(postID uint, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if t, ok := s.timers[postID]; ok {
		t.Stop()
	}
	s.timers[postID] = time.AfterFunc(time.Until(at), func() {
		s.publish(postID)
	})
}

// Cancel drops the pending timer for a post, if any. Called on post
// deletion; idempotent.
func (s *Scheduler) Cancel(postID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[postID]; ok {
		t.Stop()
		delete(s.timers, postID)
	}
}

// Stop cancels all pending timers. Pending transitions stay persisted
// and are picked up by the next Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) publish(postID uint) {
	s.mu.Lock()
	delete(s.timers, postID)
	s.mu.Unlock()

	published, err := s.posts.MarkPublished(postID)
	if err != nil {
		log.Printf("Failed to publish post %d: %v", postID, err)
		return
	}
	if published {
		log.Printf("Post %d has been published.", postID)
	}
}
