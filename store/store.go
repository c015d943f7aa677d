// Package store provides document persistence adapters for translations and
// languages. MongoStore is the production backend; MemoryStore backs tests
// and local development. Both implement tmt.Store and return the tmt error
// types for domain conditions.
package store

import "github.com/ZaguanLabs/tmt"

// compile-time interface checks
var (
	_ tmt.Store = (*MongoStore)(nil)
	_ tmt.Store = (*MemoryStore)(nil)
)

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
