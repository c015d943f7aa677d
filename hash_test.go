package tmt

import "testing"

func TestHashText_Deterministic(t *testing.T) {
	h1 := HashText("Hello World")
	h2 := HashText("Hello World")
	if h1 != h2 {
		t.Error("Expected identical hashes for identical input")
	}
	if len(h1) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(h1))
	}
}

func TestHashText_Trims(t *testing.T) {
	if HashText("  Hello  ") != HashText("Hello") {
		t.Error("Expected hash of trimmed text")
	}
}

func TestHashText_Distinct(t *testing.T) {
	if HashText("Hello") == HashText("World") {
		t.Error("Expected distinct hashes for distinct input")
	}
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("abc123", "es")
	if key != "abc123:es" {
		t.Errorf("Unexpected cache key: %q", key)
	}
}
