package tmt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockProvider is a simple mock for testing
type mockProvider struct {
	mu           sync.Mutex
	translations map[string]string // "<text>|<lang>" -> translation
	failLangs    map[string]bool   // languages that fail
	err          error
	callCount    int
	delay        time.Duration
}

func newTestProvider() *mockProvider {
	return &mockProvider{
		translations: map[string]string{
			"Hello|es":                "Hola",
			"Hello|fr":                "Bonjour",
			"Welcome to Dashboard|es": "Bienvenido al panel",
			"Welcome to Dashboard|fr": "Bienvenue au tableau de bord",
		},
		failLangs: make(map[string]bool),
	}
}

func (m *mockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	m.callCount++
	fail := m.failLangs[req.TargetLang]
	err := m.err
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return "", err
	}
	if fail {
		return "", &ProviderError{Message: "simulated failure"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if translation, ok := m.translations[req.Text+"|"+req.TargetLang]; ok {
		return translation, nil
	}
	return "[" + req.Text + "]", nil
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

func TestTranslateAll_MergesAllCodes(t *testing.T) {
	p := newTestProvider()
	o := NewOrchestrator(nil, p)

	values := o.translateAll(context.Background(), "Hello", []string{"es", "fr"})

	if values["es"] != "Hola" {
		t.Errorf("Expected 'Hola', got %q", values["es"])
	}
	if values["fr"] != "Bonjour" {
		t.Errorf("Expected 'Bonjour', got %q", values["fr"])
	}
}

func TestTranslateAll_FallbackOnFailure(t *testing.T) {
	p := newTestProvider()
	p.failLangs["fr"] = true
	o := NewOrchestrator(nil, p)

	values := o.translateAll(context.Background(), "Hello", []string{"es", "fr"})

	if values["es"] != "Hola" {
		t.Errorf("Expected Spanish to succeed, got %q", values["es"])
	}
	if values["fr"] != FallbackValue("fr", "Hello") {
		t.Errorf("Expected fallback for failing language, got %q", values["fr"])
	}
}

func TestTranslateAll_AllFailures(t *testing.T) {
	p := newTestProvider()
	p.err = errors.New("provider down")
	o := NewOrchestrator(nil, p)

	values := o.translateAll(context.Background(), "Hello", []string{"es", "fr", "de"})

	for _, code := range []string{"es", "fr", "de"} {
		if values[code] != FallbackValue(code, "Hello") {
			t.Errorf("Expected fallback for %s, got %q", code, values[code])
		}
	}
}

func TestTranslateAll_DeduplicatesCodes(t *testing.T) {
	p := newTestProvider()
	o := NewOrchestrator(nil, p)

	values := o.translateAll(context.Background(), "Hello", []string{"es", "es", "es"})

	if len(values) != 1 {
		t.Errorf("Expected 1 result, got %d", len(values))
	}
	if p.calls() != 1 {
		t.Errorf("Expected 1 provider call, got %d", p.calls())
	}
}

func TestTranslateAll_SkipsSourceLang(t *testing.T) {
	p := newTestProvider()
	o := NewOrchestrator(nil, p)

	values := o.translateAll(context.Background(), "Hello", []string{"en", "es"})

	if _, ok := values["en"]; ok {
		t.Error("Expected source language to be skipped")
	}
	if values["es"] != "Hola" {
		t.Errorf("Expected 'Hola', got %q", values["es"])
	}
}

func TestTranslateAll_NilProvider(t *testing.T) {
	o := NewOrchestrator(nil, nil)

	values := o.translateAll(context.Background(), "Hello", []string{"es"})

	if values["es"] != FallbackValue("es", "Hello") {
		t.Errorf("Expected fallback with nil provider, got %q", values["es"])
	}
}

func TestTranslateAll_Timeout(t *testing.T) {
	p := newTestProvider()
	p.delay = 200 * time.Millisecond
	o := NewOrchestrator(nil, p, WithProviderTimeout(10*time.Millisecond))

	start := time.Now()
	values := o.translateAll(context.Background(), "Hello", []string{"es"})

	if values["es"] != FallbackValue("es", "Hello") {
		t.Errorf("Expected fallback on timeout, got %q", values["es"])
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Expected timeout to cut the call short, took %v", elapsed)
	}
}

func TestTranslateAll_Empty(t *testing.T) {
	p := newTestProvider()
	o := NewOrchestrator(nil, p)

	values := o.translateAll(context.Background(), "Hello", nil)

	if len(values) != 0 {
		t.Errorf("Expected empty map, got %v", values)
	}
	if p.calls() != 0 {
		t.Errorf("Expected no provider calls, got %d", p.calls())
	}
}
