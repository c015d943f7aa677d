package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZaguanLabs/tmt"
)

// MemoryStore is a thread-safe in-memory tmt.Store. It mirrors the Mongo
// adapter's semantics (unique key/code, store-side timestamps, substring
// search over key and values) for tests and local development.
type MemoryStore struct {
	mu           sync.RWMutex
	translations map[string]tmt.Translation // by id
	languages    []tmt.Language
	pingErr      error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		translations: make(map[string]tmt.Translation),
	}
}

// FailPing makes subsequent Ping calls return err (nil restores health).
func (s *MemoryStore) FailPing(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

// Ping reports the configured health state.
func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pingErr != nil {
		return &tmt.StoreError{Op: "ping", Cause: s.pingErr}
	}
	return nil
}

func newID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// InsertTranslation persists a new translation, setting timestamps and id.
func (s *MemoryStore) InsertTranslation(ctx context.Context, tr *tmt.Translation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.translations {
		if existing.Key == tr.Key {
			return &tmt.DuplicateKeyError{Key: tr.Key}
		}
	}

	now := time.Now().UTC()
	tr.ID = newID()
	tr.CreatedAt = now
	tr.UpdatedAt = now

	stored := *tr
	stored.Values = copyValues(tr.Values)
	s.translations[tr.ID] = stored
	return nil
}

// TranslationByID resolves one translation by id.
func (s *MemoryStore) TranslationByID(ctx context.Context, id string) (*tmt.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tr, ok := s.translations[id]
	if !ok {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}
	tr.Values = copyValues(tr.Values)
	return &tr, nil
}

// TranslationByKey resolves one translation by its unique key.
func (s *MemoryStore) TranslationByKey(ctx context.Context, key string) (*tmt.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tr := range s.translations {
		if tr.Key == key {
			tr.Values = copyValues(tr.Values)
			return &tr, nil
		}
	}
	return nil, &tmt.NotFoundError{Kind: "translation", ID: key}
}

func matches(tr tmt.Translation, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(tr.Key), q) {
		return true
	}
	for _, v := range tr.Values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// ListTranslations searches, sorts, and paginates.
func (s *MemoryStore) ListTranslations(ctx context.Context, q tmt.ListQuery) ([]tmt.Translation, int64, error) {
	s.mu.RLock()
	matched := make([]tmt.Translation, 0, len(s.translations))
	for _, tr := range s.translations {
		if matches(tr, q.Query) {
			tr.Values = copyValues(tr.Values)
			matched = append(matched, tr)
		}
	}
	s.mu.RUnlock()

	less := func(a, b tmt.Translation) bool {
		switch q.Sort {
		case tmt.SortByCreatedAt:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case tmt.SortByUpdatedAt:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		}
		return a.Key < b.Key
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.Order == tmt.OrderDesc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.PerPage
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + q.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// AllTranslations returns every translation, key-ordered.
func (s *MemoryStore) AllTranslations(ctx context.Context) ([]tmt.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]tmt.Translation, 0, len(s.translations))
	for _, tr := range s.translations {
		tr.Values = copyValues(tr.Values)
		all = append(all, tr)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return all, nil
}

// MergeTranslationValues overwrites patched codes, preserves the rest, and
// advances updated_at.
func (s *MemoryStore) MergeTranslationValues(ctx context.Context, id string, patch map[string]string) (*tmt.Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.translations[id]
	if !ok {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	values := copyValues(tr.Values)
	for code, value := range patch {
		values[code] = value
	}
	tr.Values = values
	tr.UpdatedAt = time.Now().UTC()
	s.translations[id] = tr

	out := tr
	out.Values = copyValues(tr.Values)
	return &out, nil
}

// ReplaceTranslationValues swaps the whole values map, advancing updated_at.
func (s *MemoryStore) ReplaceTranslationValues(ctx context.Context, id string, values map[string]string) (*tmt.Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.translations[id]
	if !ok {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	tr.Values = copyValues(values)
	tr.UpdatedAt = time.Now().UTC()
	s.translations[id] = tr

	out := tr
	out.Values = copyValues(tr.Values)
	return &out, nil
}

// SetTranslationValue sets a single language value, advancing updated_at.
func (s *MemoryStore) SetTranslationValue(ctx context.Context, id, code, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.translations[id]
	if !ok {
		return &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	values := copyValues(tr.Values)
	values[code] = value
	tr.Values = values
	tr.UpdatedAt = time.Now().UTC()
	s.translations[id] = tr
	return nil
}

// DeleteTranslation permanently removes a translation.
func (s *MemoryStore) DeleteTranslation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.translations[id]; !ok {
		return &tmt.NotFoundError{Kind: "translation", ID: id}
	}
	delete(s.translations, id)
	return nil
}

// Languages returns the configured languages, default first then by code.
func (s *MemoryStore) Languages(ctx context.Context) ([]tmt.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]tmt.Language, len(s.languages))
	copy(langs, s.languages)
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].IsDefault != langs[j].IsDefault {
			return langs[i].IsDefault
		}
		return langs[i].Code < langs[j].Code
	})
	return langs, nil
}

// LanguageByCode resolves one language by its code.
func (s *MemoryStore) LanguageByCode(ctx context.Context, code string) (*tmt.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lang := range s.languages {
		if lang.Code == code {
			out := lang
			return &out, nil
		}
	}
	return nil, &tmt.NotFoundError{Kind: "language", ID: code}
}

// InsertLanguage persists a new language.
func (s *MemoryStore) InsertLanguage(ctx context.Context, lang *tmt.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.languages {
		if existing.Code == lang.Code {
			return &tmt.DuplicateLanguageError{Code: lang.Code}
		}
	}

	lang.ID = newID()
	s.languages = append(s.languages, *lang)
	return nil
}

// SeedLanguages inserts langs only when no languages are configured.
func (s *MemoryStore) SeedLanguages(ctx context.Context, langs []tmt.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.languages) > 0 {
		return nil
	}
	for _, lang := range langs {
		lang.ID = newID()
		s.languages = append(s.languages, lang)
	}
	return nil
}
