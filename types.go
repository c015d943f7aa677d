package tmt

import (
	"strings"
	"time"
)

// DefaultLanguageCode is the source-of-truth language for generation and
// regeneration. The language marked is_default in the store must carry this
// code.
const DefaultLanguageCode = "en"

// Translation is one translatable phrase identified by a stable key, with one
// value per configured language code.
type Translation struct {
	ID        string            `json:"_id,omitempty"`
	Key       string            `json:"key"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Language is one configured target language.
type Language struct {
	ID        string `json:"id,omitempty"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// StandardLanguage is an entry in the static catalog of selectable languages.
type StandardLanguage struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// EventType identifies the kind of change an Event describes.
type EventType string

const (
	// EventTranslationAdded is published after a translation is created.
	EventTranslationAdded EventType = "translation_added"
	// EventTranslationUpdated is published after a translation's values change.
	EventTranslationUpdated EventType = "translation_updated"
	// EventTranslationDeleted is published after a translation is removed.
	EventTranslationDeleted EventType = "translation_deleted"
	// EventLanguageAdded is published after a new language is configured.
	EventLanguageAdded EventType = "language_added"
)

// Event is a change notification delivered to live clients. Fields not
// relevant to the event type are omitted.
type Event struct {
	Type EventType `json:"type"`
	Key  string    `json:"key,omitempty"`
	ID   string    `json:"id,omitempty"`
	Code string    `json:"code,omitempty"`
	Name string    `json:"name,omitempty"`
	TS   int64     `json:"ts"`
}

// SortField enumerates the translation fields a listing can be ordered by.
type SortField string

const (
	SortByKey       SortField = "key"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// SortOrder is the listing direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListQuery describes a translation search: an optional case-insensitive
// substring filter over key and values, a sort field/direction, and 1-indexed
// offset pagination.
type ListQuery struct {
	Query   string
	Sort    SortField
	Order   SortOrder
	Page    int
	PerPage int
}

// ListResult is one page of matching translations plus the total match count.
type ListResult struct {
	Items   []Translation `json:"translations"`
	Page    int           `json:"page"`
	PerPage int           `json:"per"`
	Total   int64         `json:"total"`
}

// TranslateRequest contains the parameters for one provider call.
type TranslateRequest struct {
	Text       string
	TargetLang string
	SourceLang string
}

// NormalizeKey converts raw user input into the canonical key form:
// trimmed, uppercased, spaces replaced with underscores.
func NormalizeKey(raw string) string {
	key := strings.TrimSpace(raw)
	key = strings.ToUpper(key)
	return strings.ReplaceAll(key, " ", "_")
}

// FallbackValue is the deterministic placeholder substituted when the
// provider fails for a language: "[<code>] <text>".
func FallbackValue(code, text string) string {
	return "[" + code + "] " + text
}

// IsFallbackValue reports whether value is the fallback placeholder for code.
func IsFallbackValue(code, value string) bool {
	return strings.HasPrefix(value, "["+code+"] ")
}
