package cache

import (
	"testing"
	"time"
)

func TestGetReturnsLiveValue(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v", 0)

	v, ok := c.Get("k")
	if !ok || v.(string) != "v" {
		t.Fatalf("want live value, got %v ok=%v", v, ok)
	}
}

func TestExpiredEntryEvictedOnGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v", 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry should be absent")
	}
	if c.Len() != 0 {
		t.Fatalf("stale entry not evicted, len=%d", c.Len())
	}
}

func TestSetReplacesValueAndTTL(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1, 10*time.Millisecond)
	c.Set("k", 2, time.Minute)

	time.Sleep(25 * time.Millisecond)

	v, ok := c.Get("k")
	if !ok || v.(int) != 2 {
		t.Fatalf("want replaced value 2, got %v ok=%v", v, ok)
	}
}

func TestInvalidateByPattern(t *testing.T) {
	c := New(time.Minute)
	c.Set("products:all", 1, 0)
	c.Set("products:hoodie", 2, 0)
	c.Set("product:premium-hoodie", 3, 0)

	c.Invalidate("products:")

	if _, ok := c.Get("products:all"); ok {
		t.Fatal("products:all should be gone")
	}
	if _, ok := c.Get("products:hoodie"); ok {
		t.Fatal("products:hoodie should be gone")
	}
	if _, ok := c.Get("product:premium-hoodie"); !ok {
		t.Fatal("unrelated key should survive")
	}
}

func TestInvalidateEmptyPatternClearsAll(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Invalidate("")

	if c.Len() != 0 {
		t.Fatalf("want empty cache, len=%d", c.Len())
	}
}
