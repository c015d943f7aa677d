package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/tmt"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates one text using OpenAI.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if req.Text == "" {
		return "", nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &tmt.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &tmt.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content)
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	sourceName := tmt.GetLanguageName(req.SourceLang)
	if req.SourceLang == "" {
		sourceName = tmt.GetLanguageName("en")
	}
	targetName := tmt.GetLanguageName(req.TargetLang)

	return fmt.Sprintf(`# Role
You are an expert native translator. You translate short user-interface strings from %s to %s with the fluency and nuance of a highly educated native speaker.

# Task
Translate the provided text into idiomatic %s.

# Style Guide
- **Natural Flow**: Avoid literal translations. Rephrase to sound completely natural to a native speaker.
- **UI Register**: The text is a user-interface label or message. Keep it concise.
- **Interpolation**: Do NOT translate variables or placeholders (e.g., {{name}}, {count}, %%s, $1).
- **Formatting**: Preserve meaningful whitespace and use idiomatic punctuation for the target language.

# Format
Return a valid JSON object with a single key "translation" containing the translated string.
Example: { "translation": "translated text" }
- Do NOT wrap in Markdown code blocks.`, sourceName, targetName, targetName)
}

func (p *OpenAIProvider) parseResponse(content string) (string, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if v, ok := obj["translation"]; ok {
			if s, ok := v.(string); ok {
				return s, nil
			}
		}

		// Fallback: first string value
		for _, v := range obj {
			if s, ok := v.(string); ok {
				return s, nil
			}
		}
	}

	// Model may have answered with a bare string despite instructions
	var s string
	if err := json.Unmarshal([]byte(content), &s); err == nil && s != "" {
		return s, nil
	}

	return "", &tmt.ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

func isRetryableError(err error) bool {
	// Check for common retryable conditions
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
