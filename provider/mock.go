package provider

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/tmt"
)

// MockProvider is a mock translation provider for testing. Translations are
// looked up by "<text>|<targetLang>", falling back to the bracketed form used
// for untranslatable content.
type MockProvider struct {
	mu           sync.Mutex
	Translations map[string]string // Map of "<text>|<lang>" to translation
	Err          error             // If set, every call fails with this error
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello|es":                "Hola",
			"World|es":                "Mundo",
			"Hello World|es":          "Hola Mundo",
			"Hello|fr":                "Bonjour",
			"Welcome to Dashboard|es": "Bienvenido al panel",
			"Welcome to Dashboard|fr": "Bienvenue au tableau de bord",
		},
	}
}

// Translate returns mock translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return "", m.Err
	}

	if translation, ok := m.Translations[req.Text+"|"+req.TargetLang]; ok {
		return translation, nil
	}

	// Bracketed text for unknown translations
	return "[" + req.Text + "]", nil
}

// Calls returns the call count under lock.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider
var _ tmt.Provider = (*MockProvider)(nil)
