package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != ":5000" {
		t.Errorf("Expected default addr :5000, got %q", cfg.Addr)
	}
	if cfg.MongoDB != "translation" {
		t.Errorf("Expected default db, got %q", cfg.MongoDB)
	}
	if cfg.Provider != ProviderHuggingFace {
		t.Errorf("Expected default provider huggingface, got %q", cfg.Provider)
	}
	if cfg.CacheTTL != 3600 {
		t.Errorf("Expected default cache TTL 3600, got %d", cfg.CacheTTL)
	}
	if cfg.ProviderTimeout != 15*time.Second {
		t.Errorf("Expected default provider timeout 15s, got %v", cfg.ProviderTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("Expected wildcard origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for missing MONGO_URI")
	}
	if !strings.Contains(err.Error(), "MONGO_URI") {
		t.Errorf("Expected MONGO_URI in error, got %v", err)
	}
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TMT_PROVIDER", "babelfish")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid provider")
	}
	if !strings.Contains(err.Error(), "TMT_PROVIDER") {
		t.Errorf("Expected TMT_PROVIDER in error, got %v", err)
	}
}

func TestLoad_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TMT_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for openai without key")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed with key set: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Expected openai provider, got %q", cfg.Provider)
	}
}

func TestLoad_HuggingFaceWorksWithoutKey(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TMT_PROVIDER", "huggingface")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HFKey != "" {
		t.Errorf("Expected empty HF key, got %q", cfg.HFKey)
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for invalid log format")
	}
}

func TestLoad_CORSOriginsList(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("Expected split origins, got %v", cfg.AllowedOrigins)
	}
}
