package gallery

import (
	"sync"
	"time"
)

// PagerState is Idle or Loading
type PagerState int

const (
	Idle PagerState = iota
	Loading
)

func (s PagerState) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// Timer is the part of *time.Timer the pager uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Ticket identifies one growth step. A Reset invalidates outstanding tickets.
type Ticket uint64

// Pager tracks how many filtered items are visible and grows that count
// one page at a time. Safe for concurrent use.
type Pager struct {
	mu        sync.Mutex
	pageSize  int
	delay     time.Duration
	visible   int
	state     PagerState
	epoch     Ticket
	timer     Timer
	afterFunc AfterFunc
}

// PagerOption configures a Pager
type PagerOption func(*Pager)

// WithAfterFunc replaces the timer used by RequestGrowth.
func WithAfterFunc(fn AfterFunc) PagerOption {
	return func(p *Pager) { p.afterFunc = fn }
}

// NewPager creates a pager showing pageSize items. delay is the simulated
// latency of a growth step; zero completes on the next timer tick.
func NewPager(pageSize int, delay time.Duration, opts ...PagerOption) *Pager {
	if pageSize <= 0 {
		pageSize = 10
	}
	if delay < 0 {
		delay = 0
	}
	p := &Pager{
		pageSize:  pageSize,
		delay:     delay,
		visible:   pageSize,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PageSize returns the growth step and initial visible count
func (p *Pager) PageSize() int { return p.pageSize }

// Delay returns the simulated latency of a growth step
func (p *Pager) Delay() time.Duration { return p.delay }

// VisibleCount returns the current prefix length
func (p *Pager) VisibleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// State returns Idle or Loading
func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Loading reports whether a growth step is pending
func (p *Pager) Loading() bool {
	return p.State() == Loading
}

// Reset shows the first page again and abandons a pending growth step.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = p.pageSize
	p.state = Idle
	p.epoch++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// HasMore reports whether total items exceed the visible prefix.
func (p *Pager) HasMore(total int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible < total
}

// Begin moves Idle to Loading when more than the visible prefix exists.
// It returns false, and changes nothing, when already loading or when
// everything is visible. Pass the ticket to Complete.
func (p *Pager) Begin(total int) (Ticket, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Loading || p.visible >= total {
		return 0, false
	}
	p.state = Loading
	return p.epoch, true
}

// Complete finishes the growth step for ticket: the visible count grows by
// one page and the pager returns to Idle. Stale tickets are ignored.
func (p *Pager) Complete(ticket Ticket) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Loading || ticket != p.epoch {
		return false
	}
	p.visible += p.pageSize
	p.state = Idle
	p.timer = nil
	return true
}

// RequestGrowth starts a growth step that completes after the configured
// delay, then calls done (if non-nil) from the timer goroutine. It returns
// false when the request was ignored.
//
// It serves embedders that own no event loop. The TUI drives Begin and
// Complete from its own tick message instead.
func (p *Pager) RequestGrowth(total int, done func()) bool {
	ticket, ok := p.Begin(total)
	if !ok {
		return false
	}

	timer := p.afterFunc(p.delay, func() {
		if p.Complete(ticket) && done != nil {
			done()
		}
	})

	p.mu.Lock()
	if p.state == Loading && p.epoch == ticket {
		p.timer = timer
	}
	p.mu.Unlock()
	return true
}

// VisiblePrefix returns the first min(visibleCount, len(items)) elements.
func VisiblePrefix[T any](p *Pager, items []T) []T {
	n := p.VisibleCount()
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
