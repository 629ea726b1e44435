package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUSetGet(t *testing.T) {
	c := NewLRU[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %d (found=%v)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	c.Set("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Fatalf("expected overwrite to 10, got %d", v)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU[int](3, time.Minute)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	// Touch k0 so k1 becomes the eviction candidate.
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("expected k0 present")
	}
	c.Set("k3", 3)

	if _, ok := c.Get("k1"); ok {
		t.Fatal("expected k1 evicted")
	}
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("expected k0 retained")
	}
	if c.Size() != 3 {
		t.Fatalf("expected size 3, got %d", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[string](4, 10*time.Millisecond)
	c.Set("a", "x")
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry expired")
	}
	if c.Size() != 0 {
		t.Fatalf("expected expired entry dropped, got size %d", c.Size())
	}
}

func TestLRUDelete(t *testing.T) {
	c := NewLRU[int](4, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a deleted")
	}
	c.Delete("a") // idempotent
}
