package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGate_DiscardsWithinWindow(t *testing.T) {
	g := NewGate(250 * time.Millisecond)

	if !g.Accept(1 * time.Second) {
		t.Fatal("first edge after boot window should be accepted")
	}
	if g.Accept(1*time.Second + 100*time.Millisecond) {
		t.Error("edge 100ms after accepted edge should be discarded")
	}
	if g.Accept(1*time.Second + 250*time.Millisecond) {
		t.Error("edge exactly 250ms after accepted edge should be discarded")
	}
	if !g.Accept(1*time.Second + 251*time.Millisecond) {
		t.Error("edge 251ms after accepted edge should be accepted")
	}
}

func TestGate_DiscardedEdgeDoesNotExtendWindow(t *testing.T) {
	g := NewGate(250 * time.Millisecond)

	g.Accept(1 * time.Second)
	g.Accept(1*time.Second + 200*time.Millisecond) // discarded
	if !g.Accept(1*time.Second + 300*time.Millisecond) {
		t.Error("window must be measured from the last accepted edge, not the last edge")
	}
	if got := g.LastAccepted(); got != 1*time.Second+300*time.Millisecond {
		t.Errorf("LastAccepted = %v, want 1.3s", got)
	}
}

func TestGate_BootWindow(t *testing.T) {
	g := NewGate(250 * time.Millisecond)
	if g.Accept(100 * time.Millisecond) {
		t.Error("edge inside the first window after boot should be discarded")
	}
	if !g.Accept(300 * time.Millisecond) {
		t.Error("edge after the first window should be accepted")
	}
}

func TestGate_DefaultWindow(t *testing.T) {
	if got := NewGate(0).Window(); got != DefaultWindow {
		t.Errorf("Window = %v, want %v", got, DefaultWindow)
	}
	if got := NewGate(-time.Second).Window(); got != DefaultWindow {
		t.Errorf("Window = %v, want %v", got, DefaultWindow)
	}
}

func TestGate_ConcurrentEdgesAcceptOnlyOne(t *testing.T) {
	g := NewGate(250 * time.Millisecond)
	now := 5 * time.Second

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if g.Accept(now + time.Duration(i)*time.Millisecond) {
				accepted.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if got := accepted.Load(); got != 1 {
		t.Errorf("accepted = %d, want exactly 1", got)
	}
}

func TestSinceBoot_Monotonic(t *testing.T) {
	clock := SinceBoot()
	a := clock()
	time.Sleep(2 * time.Millisecond)
	b := clock()
	if b <= a {
		t.Errorf("clock went backwards or stalled: %v then %v", a, b)
	}
}
