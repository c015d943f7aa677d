package tmt

import (
	"context"
	"sync"
)

// translateAll issues one provider call per target code and merges the
// results into a values map keyed by language code. Each call is independent:
// on provider failure or timeout the code receives FallbackValue instead of
// failing the whole operation, and completion order is irrelevant because the
// merge is commutative.
func (o *Orchestrator) translateAll(ctx context.Context, source string, codes []string) map[string]string {
	values := make(map[string]string, len(codes)+1)
	if len(codes) == 0 {
		return values
	}

	type langResult struct {
		code string
		text string
	}

	// Deduplicate codes first
	unique := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if code == "" || code == o.sourceLang || seen[code] {
			continue
		}
		seen[code] = true
		unique = append(unique, code)
	}

	results := make(chan langResult, len(unique))
	var wg sync.WaitGroup

	for _, code := range unique {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			results <- langResult{code: code, text: o.translateOne(ctx, source, code)}
		}(code)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		values[r.code] = r.text
	}

	return values
}

// translateOne translates source into one target code under the configured
// per-call timeout, substituting the fallback value on any failure.
func (o *Orchestrator) translateOne(ctx context.Context, source, code string) string {
	if o.provider == nil || source == "" {
		return FallbackValue(code, source)
	}

	callCtx, cancel := context.WithTimeout(ctx, o.providerTimeout)
	defer cancel()

	out, err := o.provider.Translate(callCtx, TranslateRequest{
		Text:       source,
		TargetLang: code,
		SourceLang: o.sourceLang,
	})
	if err != nil {
		o.logger.Warn("provider call failed, using fallback",
			"lang", code, "error", err)
		return FallbackValue(code, source)
	}
	if out == "" {
		return FallbackValue(code, source)
	}

	return out
}
