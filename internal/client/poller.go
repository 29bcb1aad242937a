package client

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultPollInterval = 5 * time.Second

// Snapshot is the most recent successful fetch.
type Snapshot struct {
	Tasks     []Task
	FetchedAt time.Time
}

// Poller keeps a task snapshot fresh. A failed fetch keeps the previous
// snapshot and is retried on the next tick.
type Poller struct {
	client   *Client
	interval time.Duration
	logger   *slog.Logger
	onUpdate func(Snapshot)
	now      func() time.Time

	mu   sync.RWMutex
	last Snapshot
	ok   bool
}

type PollerOption func(*Poller)

// OnUpdate is called after every successful fetch, from the polling goroutine.
func OnUpdate(fn func(Snapshot)) PollerOption {
	return func(p *Poller) { p.onUpdate = fn }
}

func WithLogger(logger *slog.Logger) PollerOption {
	return func(p *Poller) { p.logger = logger }
}

func NewPoller(c *Client, interval time.Duration, opts ...PollerOption) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	p := &Poller{client: c, interval: interval, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run fetches immediately and then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn("refresh failed, keeping last snapshot", "error", err)
	}
}

// Refresh performs one fetch.
func (p *Poller) Refresh(ctx context.Context) error {
	tasks, err := p.client.ListTasks(ctx, "")
	if err != nil {
		return err
	}

	snap := Snapshot{Tasks: tasks, FetchedAt: p.now()}
	p.mu.Lock()
	p.last, p.ok = snap, true
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(snap)
	}
	return nil
}

// Snapshot returns the last good fetch; ok is false until one has succeeded.
func (p *Poller) Snapshot() (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.ok
}
