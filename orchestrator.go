package tmt

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Provider is the interface for translation backends.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslationCache is the interface for provider-level translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Store is the interface for translation and language persistence. Adapters
// return the package error types (*DuplicateKeyError, *DuplicateLanguageError,
// *NotFoundError) for domain conditions and wrap backend failures in
// *StoreError. Timestamps are set by the store on insert and update.
type Store interface {
	InsertTranslation(ctx context.Context, tr *Translation) error
	TranslationByID(ctx context.Context, id string) (*Translation, error)
	TranslationByKey(ctx context.Context, key string) (*Translation, error)
	ListTranslations(ctx context.Context, q ListQuery) ([]Translation, int64, error)
	AllTranslations(ctx context.Context) ([]Translation, error)
	MergeTranslationValues(ctx context.Context, id string, patch map[string]string) (*Translation, error)
	ReplaceTranslationValues(ctx context.Context, id string, values map[string]string) (*Translation, error)
	SetTranslationValue(ctx context.Context, id, code, value string) error
	DeleteTranslation(ctx context.Context, id string) error

	Languages(ctx context.Context) ([]Language, error)
	LanguageByCode(ctx context.Context, code string) (*Language, error)
	InsertLanguage(ctx context.Context, lang *Language) error
	SeedLanguages(ctx context.Context, langs []Language) error

	Ping(ctx context.Context) error
}

// Orchestrator is the stateless coordinator behind every API operation: it
// resolves target languages, fans out provider calls, merges results with
// per-language fallback, persists through the Store, and publishes change
// events to the Notifier.
type Orchestrator struct {
	store           Store
	provider        Provider
	notifier        *Notifier
	logger          *slog.Logger
	cache           TranslationCache
	sourceLang      string
	providerTimeout time.Duration
}

// OrchestratorOption is a functional option for configuring the Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithNotifier sets the change notifier. Without one, events are discarded.
func WithNotifier(n *Notifier) OrchestratorOption {
	return func(o *Orchestrator) {
		o.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithCache wraps the provider with a translation cache.
func WithCache(c TranslationCache) OrchestratorOption {
	return func(o *Orchestrator) {
		o.cache = c
	}
}

// WithSourceLang overrides the default source language code.
func WithSourceLang(code string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.sourceLang = NormalizeLanguageCode(code)
	}
}

// WithProviderTimeout bounds each individual provider call. On timeout the
// language receives its fallback value, same as any other provider failure.
func WithProviderTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.providerTimeout = d
	}
}

// NewOrchestrator creates an Orchestrator backed by the given store and
// provider.
func NewOrchestrator(store Store, provider Provider, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		store:           store,
		provider:        provider,
		logger:          slog.Default(),
		sourceLang:      DefaultLanguageCode,
		providerTimeout: 15 * time.Second,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.cache != nil && o.provider != nil {
		o.provider = NewCachedProvider(o.provider, o.cache)
	}

	return o
}

// DefaultLanguages are seeded on first start when no languages are configured.
var DefaultLanguages = []Language{
	{Code: "en", Name: "English", IsDefault: true},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
}

// EnsureDefaultLanguages seeds the language collection if it is empty.
func (o *Orchestrator) EnsureDefaultLanguages(ctx context.Context) error {
	return o.store.SeedLanguages(ctx, DefaultLanguages)
}

// Create builds a new translation for key: the source value is stored under
// the default language code directly, every other resolved target code is
// translated through the provider (fallback value on failure), and the merged
// document is persisted. An empty targetCodes means every configured language
// except the default.
func (o *Orchestrator) Create(ctx context.Context, key, sourceValue string, targetCodes []string) (*Translation, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, &ValidationError{Field: "key", Message: "must not be empty"}
	}
	if sourceValue == "" {
		return nil, &ValidationError{Field: "value", Message: "must not be empty"}
	}

	if existing, err := o.store.TranslationByKey(ctx, key); err == nil && existing != nil {
		return nil, &DuplicateKeyError{Key: key}
	}

	codes, err := o.resolveTargets(ctx, targetCodes)
	if err != nil {
		return nil, err
	}

	values := o.translateAll(ctx, sourceValue, codes)
	values[o.sourceLang] = sourceValue

	tr := &Translation{Key: key, Values: values}
	if err := o.store.InsertTranslation(ctx, tr); err != nil {
		return nil, err
	}

	o.publish(Event{Type: EventTranslationAdded, Key: key, ID: tr.ID})
	return tr, nil
}

// Update merges patch into the translation's values: patched codes are
// overwritten, untouched codes are preserved, and updated_at advances.
func (o *Orchestrator) Update(ctx context.Context, id string, patch map[string]string) (*Translation, error) {
	if len(patch) == 0 {
		return nil, &ValidationError{Field: "values", Message: "must not be empty"}
	}

	normalized := make(map[string]string, len(patch))
	for code, value := range patch {
		normalized[NormalizeLanguageCode(code)] = value
	}

	tr, err := o.store.MergeTranslationValues(ctx, id, normalized)
	if err != nil {
		return nil, err
	}

	o.publish(Event{Type: EventTranslationUpdated, ID: id, Key: tr.Key})
	return tr, nil
}

// Regenerate rebuilds the translation from its current default-language
// value, re-translating into the full currently configured language set.
// Existing non-default values are overwritten.
func (o *Orchestrator) Regenerate(ctx context.Context, id string) (*Translation, error) {
	tr, err := o.store.TranslationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	source := tr.Values[o.sourceLang]
	codes, err := o.resolveTargets(ctx, nil)
	if err != nil {
		return nil, err
	}

	values := o.translateAll(ctx, source, codes)
	values[o.sourceLang] = source

	updated, err := o.store.ReplaceTranslationValues(ctx, id, values)
	if err != nil {
		return nil, err
	}

	o.publish(Event{Type: EventTranslationUpdated, ID: id, Key: updated.Key})
	return updated, nil
}

// AddLanguage configures a new target language, then backfills every existing
// translation lacking a value for that code using its default-language value
// as source. The backfill is best-effort: a provider failure yields the
// fallback value, a store failure skips the document, and the count of
// documents actually updated is returned so callers can detect shortfall.
func (o *Orchestrator) AddLanguage(ctx context.Context, code, name string) (*Language, int, error) {
	code = NormalizeLanguageCode(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, 0, &ValidationError{Field: "code", Message: "must not be empty"}
	}
	if name == "" {
		return nil, 0, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	if existing, err := o.store.LanguageByCode(ctx, code); err == nil && existing != nil {
		return nil, 0, &DuplicateLanguageError{Code: code}
	}

	lang := &Language{Code: code, Name: name}
	if err := o.store.InsertLanguage(ctx, lang); err != nil {
		return nil, 0, err
	}

	updated := o.backfillLanguage(ctx, code)

	o.publish(Event{Type: EventLanguageAdded, Code: code, Name: name})
	return lang, updated, nil
}

// backfillLanguage fills values[code] on every translation missing it.
func (o *Orchestrator) backfillLanguage(ctx context.Context, code string) int {
	all, err := o.store.AllTranslations(ctx)
	if err != nil {
		o.logger.Error("language backfill: listing translations", "code", code, "error", err)
		return 0
	}

	updated := 0
	for i := range all {
		tr := &all[i]
		if _, ok := tr.Values[code]; ok {
			continue
		}

		source := tr.Values[o.sourceLang]
		value := o.translateOne(ctx, source, code)
		if err := o.store.SetTranslationValue(ctx, tr.ID, code, value); err != nil {
			o.logger.Error("language backfill: updating translation",
				"code", code, "key", tr.Key, "error", err)
			continue
		}
		updated++
	}

	return updated
}

// List searches, sorts, and paginates translations.
func (o *Orchestrator) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.Page < 1 {
		return nil, &ValidationError{Field: "page", Message: "must be >= 1"}
	}
	if q.PerPage <= 0 {
		return nil, &ValidationError{Field: "per", Message: "must be > 0"}
	}

	switch q.Sort {
	case "":
		q.Sort = SortByKey
	case SortByKey, SortByCreatedAt, SortByUpdatedAt:
	default:
		return nil, &ValidationError{Field: "sort", Message: "must be one of key, created_at, updated_at"}
	}

	switch q.Order {
	case "":
		q.Order = OrderAsc
	case OrderAsc, OrderDesc:
	default:
		return nil, &ValidationError{Field: "order", Message: "must be asc or desc"}
	}

	items, total, err := o.store.ListTranslations(ctx, q)
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Page: q.Page, PerPage: q.PerPage, Total: total}, nil
}

// Delete permanently removes the translation. No soft delete, no cascade.
func (o *Orchestrator) Delete(ctx context.Context, id string) error {
	if err := o.store.DeleteTranslation(ctx, id); err != nil {
		return err
	}

	o.publish(Event{Type: EventTranslationDeleted, ID: id})
	return nil
}

// Export returns every translation document for backup or migration.
func (o *Orchestrator) Export(ctx context.Context) ([]Translation, error) {
	return o.store.AllTranslations(ctx)
}

// Languages returns the configured languages.
func (o *Orchestrator) Languages(ctx context.Context) ([]Language, error) {
	return o.store.Languages(ctx)
}

// Ping reports store reachability.
func (o *Orchestrator) Ping(ctx context.Context) error {
	return o.store.Ping(ctx)
}

// SourceLang returns the default source language code.
func (o *Orchestrator) SourceLang() string {
	return o.sourceLang
}

// resolveTargets expands the requested target codes: nil or empty means every
// configured language except the source. The source language is never a
// translation target.
func (o *Orchestrator) resolveTargets(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		codes := make([]string, 0, len(requested))
		for _, raw := range requested {
			code := NormalizeLanguageCode(raw)
			if code == "" || code == o.sourceLang {
				continue
			}
			codes = append(codes, code)
		}
		return codes, nil
	}

	langs, err := o.store.Languages(ctx)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(langs))
	for _, lang := range langs {
		if lang.IsDefault || lang.Code == o.sourceLang {
			continue
		}
		codes = append(codes, lang.Code)
	}
	return codes, nil
}

func (o *Orchestrator) publish(ev Event) {
	if o.notifier == nil {
		return
	}
	o.notifier.Publish(ev)
}
