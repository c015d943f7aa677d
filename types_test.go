package tmt

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"home title", "HOME_TITLE"},
		{"  home title  ", "HOME_TITLE"},
		{"HOME_TITLE", "HOME_TITLE"},
		{"welcome message text", "WELCOME_MESSAGE_TEXT"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.input); got != tt.expected {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFallbackValue(t *testing.T) {
	got := FallbackValue("es", "Welcome to Dashboard")
	want := "[es] Welcome to Dashboard"
	if got != want {
		t.Errorf("FallbackValue = %q, want %q", got, want)
	}
}

func TestIsFallbackValue(t *testing.T) {
	if !IsFallbackValue("es", FallbackValue("es", "Hello")) {
		t.Error("Expected fallback value to be recognized")
	}
	if IsFallbackValue("es", "Hola") {
		t.Error("Expected real translation not to be recognized as fallback")
	}
	if IsFallbackValue("fr", FallbackValue("es", "Hello")) {
		t.Error("Expected fallback for another code not to match")
	}
}
