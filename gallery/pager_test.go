package gallery

import (
	"sync"
	"testing"
	"time"
)

func TestPagerGrowsToTotal(t *testing.T) {
	clock := &fakeClock{}
	p := NewPager(10, 800*time.Millisecond, WithAfterFunc(clock.AfterFunc))
	items := numbered(45)

	if got := len(VisiblePrefix(p, items)); got != 10 {
		t.Fatalf("initial prefix = %d, want 10", got)
	}

	if !p.RequestGrowth(len(items), nil) {
		t.Fatal("first growth ignored")
	}
	if p.State() != Loading {
		t.Errorf("state = %v, want loading", p.State())
	}
	if clock.delays[0] != 800*time.Millisecond {
		t.Errorf("delay = %v, want 800ms", clock.delays[0])
	}
	clock.fire()
	if got := len(VisiblePrefix(p, items)); got != 20 {
		t.Fatalf("prefix after one cycle = %d, want 20", got)
	}

	cycles := 1
	for p.RequestGrowth(len(items), nil) {
		clock.fire()
		cycles++
		if cycles > 10 {
			t.Fatal("growth never stopped")
		}
	}
	if cycles != 4 {
		t.Errorf("growth cycles = %d, want 4", cycles)
	}
	if got := len(VisiblePrefix(p, items)); got != 45 {
		t.Errorf("final prefix = %d, want 45", got)
	}
	if p.HasMore(len(items)) {
		t.Error("HasMore true after everything visible")
	}
	if p.RequestGrowth(len(items), nil) {
		t.Error("growth accepted with everything visible")
	}
}

func TestPagerReentrantGrowth(t *testing.T) {
	clock := &fakeClock{}
	p := NewPager(10, 800*time.Millisecond, WithAfterFunc(clock.AfterFunc))

	if !p.RequestGrowth(45, nil) {
		t.Fatal("first request ignored")
	}
	if p.RequestGrowth(45, nil) {
		t.Fatal("second request within the delay window was accepted")
	}
	if clock.scheduled() != 1 {
		t.Fatalf("scheduled timers = %d, want 1", clock.scheduled())
	}
	clock.fire()
	if p.VisibleCount() != 20 {
		t.Errorf("visible = %d, want 20", p.VisibleCount())
	}
	if p.State() != Idle {
		t.Errorf("state = %v, want idle", p.State())
	}
}

func TestPagerResetCancelsPendingGrowth(t *testing.T) {
	clock := &fakeClock{}
	p := NewPager(10, time.Second, WithAfterFunc(clock.AfterFunc))

	p.RequestGrowth(45, nil)
	p.Reset()
	clock.fire()

	if p.VisibleCount() != 10 {
		t.Errorf("visible = %d, want 10", p.VisibleCount())
	}
	if p.Loading() {
		t.Error("still loading after reset")
	}
}

func TestPagerStaleTicket(t *testing.T) {
	p := NewPager(10, 0)
	ticket, ok := p.Begin(30)
	if !ok {
		t.Fatal("Begin refused")
	}
	p.Reset()
	if p.Complete(ticket) {
		t.Error("stale ticket completed")
	}
	if p.VisibleCount() != 10 {
		t.Errorf("visible = %d, want 10", p.VisibleCount())
	}

	ticket, _ = p.Begin(30)
	if !p.Complete(ticket) {
		t.Error("current ticket rejected")
	}
	if p.Complete(ticket) {
		t.Error("ticket completed twice")
	}
	if p.VisibleCount() != 20 {
		t.Errorf("visible = %d, want 20", p.VisibleCount())
	}
}

func TestPagerRealTimerCallsDone(t *testing.T) {
	p := NewPager(10, time.Millisecond)
	var wg sync.WaitGroup
	wg.Add(1)
	if !p.RequestGrowth(15, wg.Done) {
		t.Fatal("growth ignored")
	}
	wg.Wait()
	if p.VisibleCount() != 20 {
		t.Errorf("visible = %d, want 20", p.VisibleCount())
	}
	if got := len(VisiblePrefix(p, numbered(15))); got != 15 {
		t.Errorf("prefix = %d, want 15", got)
	}
}

func TestPagerDefaults(t *testing.T) {
	p := NewPager(0, -time.Second)
	if p.PageSize() != 10 {
		t.Errorf("PageSize = %d, want 10", p.PageSize())
	}
	if p.Delay() != 0 {
		t.Errorf("Delay = %v, want 0", p.Delay())
	}
	if got := VisiblePrefix(p, numbered(0)); len(got) != 0 {
		t.Errorf("prefix of empty list = %d", len(got))
	}
}
