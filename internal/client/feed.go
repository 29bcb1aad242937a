package client

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"flowboard/internal/model"
)

const FeedLimit = 30

type FeedItem struct {
	ID      string
	TaskID  string
	Title   string
	When    time.Time
	Overdue bool
	Message string
}

// BuildFeed lists a pending item per unfinished task, newest first. Dates in
// messages are rendered in now's location.
func BuildFeed(tasks []Task, now time.Time, suppressed *Suppressions) []FeedItem {
	items := make([]FeedItem, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == model.StatusDone || suppressed.Has(t.ID) {
			continue
		}

		title := t.Title
		if title == "" {
			title = "Untitled"
		}

		when := now
		switch {
		case !t.CreatedAt.IsZero():
			when = t.CreatedAt
		case t.DueDate != nil:
			when = *t.DueDate
		}

		item := FeedItem{
			ID:      "pending-" + t.ID,
			TaskID:  t.ID,
			Title:   title,
			When:    when,
			Overdue: IsOverdue(t, now),
			Message: fmt.Sprintf("Task %q is pending.", title),
		}
		if item.Overdue {
			item.Message += fmt.Sprintf(" It is overdue (due %s).", t.DueDate.In(now.Location()).Format("1/2/2006 15:04"))
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].When.After(items[j].When) })
	if len(items) > FeedLimit {
		items = items[:FeedLimit]
	}
	return items
}

// PendingCount is the badge number: unfinished tasks that are not suppressed.
func PendingCount(tasks []Task, suppressed *Suppressions) int {
	n := 0
	for _, t := range tasks {
		if t.Status != model.StatusDone && !suppressed.Has(t.ID) {
			n++
		}
	}
	return n
}

// Suppressions holds task ids the user dismissed from the feed. It lives
// only in the client. The zero value is ready to use, and a nil
// *Suppressions suppresses nothing.
type Suppressions struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewSuppressions() *Suppressions {
	return &Suppressions{ids: make(map[string]struct{})}
}

func (s *Suppressions) Add(taskID string) {
	if s == nil || taskID == "" {
		return
	}
	s.mu.Lock()
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[taskID] = struct{}{}
	s.mu.Unlock()
}

func (s *Suppressions) Remove(taskID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.ids, taskID)
	s.mu.Unlock()
}

func (s *Suppressions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.ids = nil
	s.mu.Unlock()
}

func (s *Suppressions) Has(taskID string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[taskID]
	return ok
}

func (s *Suppressions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
