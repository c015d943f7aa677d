package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 3600, "")

	mock.ExpectGet("tmt:abc123:es").SetVal("Hola")

	val, ok := c.Get("abc123:es")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if val != "Hola" {
		t.Errorf("Expected 'Hola', got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 3600, "")

	mock.ExpectGet("tmt:missing").RedisNil()

	if val, ok := c.Get("missing"); ok {
		t.Errorf("Expected cache miss, got %q", val)
	}
}

func TestRedisCache_GetErrorIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 3600, "")

	mock.ExpectGet("tmt:key").SetErr(errors.New("connection refused"))

	if _, ok := c.Get("key"); ok {
		t.Error("Expected connection error to be treated as miss")
	}
}

func TestRedisCache_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 3600, "")

	mock.ExpectSet("tmt:abc123:es", "Hola", time.Hour).SetVal("OK")

	if err := c.Set("abc123:es", "Hola"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_SetNoTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 0, "")

	mock.ExpectSet("tmt:key", "value", 0).SetVal("OK")

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func TestRedisCache_CustomPrefix(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, 3600, "custom:")

	mock.ExpectGet("custom:key").SetVal("value")

	if val, ok := c.Get("key"); !ok || val != "value" {
		t.Errorf("Expected hit with custom prefix, got %q, %v", val, ok)
	}
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(RedisConfig{URL: "not-a-url"})
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}
