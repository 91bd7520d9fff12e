// Package health keeps a cached online/offline status for the assistant by
// probing it on an interval.
package health

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval matches the widget's status-dot refresh.
const DefaultInterval = 30 * time.Second

type Status int

const (
	Unknown Status = iota
	Online
	Offline
)

func (s Status) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// CheckFunc probes the service; nil means healthy.
type CheckFunc func(ctx context.Context) error

type Poller struct {
	check    CheckFunc
	interval time.Duration

	mu      sync.RWMutex
	status  Status
	checked time.Time
}

func NewPoller(check CheckFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{check: check, interval: interval}
}

// Status returns the last observed status and when it was observed.
func (p *Poller) Status() (Status, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status, p.checked
}

// Run probes immediately and then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.CheckNow(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.CheckNow(ctx)
		}
	}
}

// CheckNow runs a single probe and records the result.
func (p *Poller) CheckNow(ctx context.Context) Status {
	next := Online
	if err := p.check(ctx); err != nil {
		next = Offline
		if ctx.Err() != nil {
			return p.current()
		}
	}

	p.mu.Lock()
	prev := p.status
	p.status = next
	p.checked = time.Now()
	p.mu.Unlock()

	if prev != next {
		log.Printf("Assistant status changed: %s -> %s", prev, next)
	}
	return next
}

func (p *Poller) current() Status {
	s, _ := p.Status()
	return s
}
