// Package notify implements the notification queue: short-lived messages
// that expire on their own after a duration or when dismissed.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/google/uuid"
)

// DefaultDuration is used when a notification does not set one.
const DefaultDuration = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notification is one queued message. A negative Duration makes it sticky:
// it stays until hidden.
type Notification struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Kind        Kind          `json:"kind"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Sticky reports whether n never expires on its own.
func (n Notification) Sticky() bool {
	return n.Duration < 0
}

type entry struct {
	n     Notification
	timer *time.Timer
}

// Queue holds notifications in insertion order. Any entry can be removed
// independently; removal is idempotent, so expiry and dismissal may race.
type Queue struct {
	mu      sync.Mutex
	entries []*entry
	closed  bool

	duration time.Duration
	log      logging.Logger
	now      func() time.Time

	subsMu sync.Mutex
	subs   map[int]func([]Notification)
	nextID int
}

type Option func(*Queue)

// WithDefaultDuration overrides DefaultDuration.
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		if d != 0 {
			q.duration = d
		}
	}
}

func WithLogger(log logging.Logger) Option {
	return func(q *Queue) { q.log = log.With("store", "notify") }
}

func New(opts ...Option) *Queue {
	q := &Queue{
		duration: DefaultDuration,
		log:      logging.Discard(),
		now:      time.Now,
		subs:     make(map[int]func([]Notification)),
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Show queues n and returns its id. The id and creation time are always
// assigned here; an empty kind becomes info and a zero duration the queue
// default. Showing on a closed queue returns an empty id.
func (q *Queue) Show(n Notification) string {
	n.ID = uuid.NewString()
	n.CreatedAt = q.now()
	if n.Kind == "" {
		n.Kind = KindInfo
	}
	if n.Duration == 0 {
		n.Duration = q.duration
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	e := &entry{n: n}
	if !n.Sticky() {
		id := n.ID
		e.timer = time.AfterFunc(n.Duration, func() { q.expire(id) })
	}
	q.entries = append(q.entries, e)
	list := q.listLocked()
	q.mu.Unlock()

	q.log.Debug(context.Background(), "notification shown", "id", n.ID, "kind", n.Kind)
	q.publish(list)
	return n.ID
}

func (q *Queue) Success(title, description string) string {
	return q.Show(Notification{Title: title, Description: description, Kind: KindSuccess})
}

func (q *Queue) Error(title, description string) string {
	return q.Show(Notification{Title: title, Description: description, Kind: KindError})
}

func (q *Queue) Warning(title, description string) string {
	return q.Show(Notification{Title: title, Description: description, Kind: KindWarning})
}

func (q *Queue) Info(title, description string) string {
	return q.Show(Notification{Title: title, Description: description, Kind: KindInfo})
}

// Hide removes the notification with id and reports whether it was queued.
func (q *Queue) Hide(id string) bool {
	return q.remove(id)
}

func (q *Queue) expire(id string) {
	if q.remove(id) {
		q.log.Debug(context.Background(), "notification expired", "id", id)
	}
}

func (q *Queue) remove(id string) bool {
	q.mu.Lock()
	idx := -1
	for i, e := range q.entries {
		if e.n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return false
	}
	if t := q.entries[idx].timer; t != nil {
		t.Stop()
	}
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	list := q.listLocked()
	q.mu.Unlock()

	q.publish(list)
	return true
}

// Clear removes every notification.
func (q *Queue) Clear() {
	q.mu.Lock()
	had := len(q.entries) > 0
	q.stopLocked()
	q.mu.Unlock()

	if had {
		q.publish(nil)
	}
}

// Close clears the queue and stops accepting notifications. Pending timers
// are stopped, so no goroutine outlives the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.stopLocked()
	q.mu.Unlock()
}

func (q *Queue) stopLocked() {
	for _, e := range q.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	q.entries = nil
}

// List returns the queued notifications, oldest first.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.listLocked()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) listLocked() []Notification {
	out := make([]Notification, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.n
	}
	return out
}

// Subscribe registers fn to receive the full list after every change,
// expiries included. fn may be called from a timer goroutine.
func (q *Queue) Subscribe(fn func([]Notification)) (cancel func()) {
	q.subsMu.Lock()
	id := q.nextID
	q.nextID++
	q.subs[id] = fn
	q.subsMu.Unlock()

	return func() {
		q.subsMu.Lock()
		delete(q.subs, id)
		q.subsMu.Unlock()
	}
}

func (q *Queue) publish(list []Notification) {
	q.subsMu.Lock()
	fns := make([]func([]Notification), 0, len(q.subs))
	for _, fn := range q.subs {
		fns = append(fns, fn)
	}
	q.subsMu.Unlock()

	for _, fn := range fns {
		fn(list)
	}
}
