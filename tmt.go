// Package tmt implements a translation management service: per-key,
// per-language translation strings stored in a document store and
// auto-populated through an AI translation provider.
//
// The core is the Orchestrator, which fans out one provider call per target
// language, merges the results (substituting a deterministic fallback for any
// language whose call fails), persists the document, and publishes a change
// event to the Notifier for delivery to live clients.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/tmt"
//	    "github.com/ZaguanLabs/tmt/cache"
//	    "github.com/ZaguanLabs/tmt/provider"
//	    "github.com/ZaguanLabs/tmt/store"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    orc := tmt.NewOrchestrator(store.NewMemoryStore(), p,
//	        tmt.WithCache(cache.NewInMemoryCache(3600)),
//	    )
//
//	    tr, err := orc.Create(context.Background(), "HOME_TITLE", "Welcome to Dashboard", nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(tr.Values["es"])
//	}
package tmt
