package tmt

import (
	"context"
	"testing"
)

// mockCache is a simple mock cache for testing
type mockCache struct {
	data map[string]string
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (c *mockCache) Get(key string) (string, bool) {
	val, ok := c.data[key]
	return val, ok
}

func (c *mockCache) Set(key string, value string) error {
	c.data[key] = value
	c.sets++
	return nil
}

func TestCachedProvider_MissThenHit(t *testing.T) {
	p := newTestProvider()
	c := newMockCache()
	cached := NewCachedProvider(p, c)

	req := TranslateRequest{Text: "Hello", TargetLang: "es", SourceLang: "en"}

	out, err := cached.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Hola" {
		t.Errorf("Expected 'Hola', got %q", out)
	}
	if p.calls() != 1 {
		t.Errorf("Expected 1 provider call, got %d", p.calls())
	}

	// Second call hits the cache
	out, err = cached.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Hola" {
		t.Errorf("Expected 'Hola' from cache, got %q", out)
	}
	if p.calls() != 1 {
		t.Errorf("Expected cache hit to skip provider, got %d calls", p.calls())
	}
}

func TestCachedProvider_KeyIncludesLanguage(t *testing.T) {
	p := newTestProvider()
	c := newMockCache()
	cached := NewCachedProvider(p, c)

	_, _ = cached.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "es"})
	_, _ = cached.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "fr"})

	if p.calls() != 2 {
		t.Errorf("Expected per-language cache keys, got %d calls", p.calls())
	}
	if c.sets != 2 {
		t.Errorf("Expected 2 cache writes, got %d", c.sets)
	}
}

func TestCachedProvider_FailureNotCached(t *testing.T) {
	p := newTestProvider()
	p.failLangs["es"] = true
	c := newMockCache()
	cached := NewCachedProvider(p, c)

	if _, err := cached.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "es"}); err == nil {
		t.Fatal("Expected error from failing provider")
	}
	if c.sets != 0 {
		t.Errorf("Expected no cache write on failure, got %d", c.sets)
	}
}
