package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUBasics(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected a miss for an unknown key")
	}

	c.Set("a", "1")
	c.Set("b", "2")
	if got, ok := c.Get("a"); !ok || got != "1" {
		t.Errorf("expected a=1, got %q (ok=%v)", got, ok)
	}

	// "a" was just used, so adding "c" evicts "b".
	c.Set("c", "3")
	if _, ok := c.Get("b"); ok {
		t.Error("expected b evicted as least recently used")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a retained")
	}
	if c.Size() != 2 {
		t.Errorf("expected size 2, got %d", c.Size())
	}
}

func TestLRUTTL(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("k", 42)

	if got, ok := c.Get("k"); !ok || got != 42 {
		t.Fatalf("expected a fresh hit, got %d (ok=%v)", got, ok)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected the entry expired")
	}

	c.Set("k", 1)
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("expected 1 expired entry swept, got %d", n)
	}
	if c.Size() != 0 {
		t.Errorf("expected empty cache after sweep, got %d", c.Size())
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	c.Purge()
	if c.Size() != 0 {
		t.Errorf("expected empty cache after purge, got %d", c.Size())
	}
	if _, ok := c.Get("k0"); ok {
		t.Error("expected all entries gone")
	}

	// The cache must stay usable after a purge.
	c.Set("x", 9)
	if got, ok := c.Get("x"); !ok || got != 9 {
		t.Errorf("expected x=9 after purge, got %d (ok=%v)", got, ok)
	}
}

func TestManagerStopWithoutStart(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[int](10, time.Minute))

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a manager whose sweep was never started")
	}

	// Stop must also tolerate being called again.
	m.Stop()
}

func TestManagerStartAndStop(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[int](10, time.Minute))
	m.StartCleanup(time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not end the sweep")
	}
}

func TestLRUSetExistingKey(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("a", "old")
	c.Set("a", "new")

	if got, _ := c.Get("a"); got != "new" {
		t.Errorf("expected the value replaced, got %q", got)
	}
	if c.Size() != 1 {
		t.Errorf("expected one entry, got %d", c.Size())
	}
}
