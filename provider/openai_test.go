package provider

import (
	"errors"
	"strings"
	"testing"
)

func TestOpenAIProvider_ParseResponse(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "translation key",
			content: `{"translation": "Hola"}`,
			want:    "Hola",
		},
		{
			name:    "different key with string value",
			content: `{"result": "Bonjour"}`,
			want:    "Bonjour",
		},
		{
			name:    "bare JSON string",
			content: `"Hallo"`,
			want:    "Hallo",
		},
		{
			name:    "translation key not a string",
			content: `{"translation": 42}`,
			wantErr: true,
		},
		{
			name:    "plain text",
			content: `not json at all`,
			wantErr: true,
		},
		{
			name:    "empty object",
			content: `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.parseResponse(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOpenAIProvider_BuildSystemPrompt(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	prompt := p.buildSystemPrompt(TranslateRequest{Text: "Hello", TargetLang: "es"})

	if !strings.Contains(prompt, "English") {
		t.Error("Expected prompt to name the default source language")
	}
	if !strings.Contains(prompt, "Spanish") {
		t.Error("Expected prompt to name the target language")
	}
	if !strings.Contains(prompt, `"translation"`) {
		t.Error("Expected prompt to demand the translation JSON key")
	}
}

func TestOpenAIProvider_BuildSystemPrompt_ExplicitSource(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	prompt := p.buildSystemPrompt(TranslateRequest{Text: "Bonjour", TargetLang: "de", SourceLang: "fr"})

	if !strings.Contains(prompt, "French") {
		t.Error("Expected prompt to name the explicit source language")
	}
	if !strings.Contains(prompt, "German") {
		t.Error("Expected prompt to name the target language")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rate limit exceeded", true},
		{"request timeout", true},
		{"connection refused", true},
		{"temporary failure", true},
		{"status code 503", true},
		{"status code 429", true},
		{"invalid api key", false},
		{"model not found", false},
	}

	for _, tt := range tests {
		if got := isRetryableError(errors.New(tt.msg)); got != tt.want {
			t.Errorf("isRetryableError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestNewOpenAIProvider_Defaults(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	if p.model != "gpt-4o-mini" {
		t.Errorf("Expected default model gpt-4o-mini, got %q", p.model)
	}
	if p.temperature != 0.3 {
		t.Errorf("Expected default temperature 0.3, got %v", p.temperature)
	}
}
