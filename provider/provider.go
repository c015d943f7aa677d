// Package provider defines the translation provider implementations.
package provider

import "github.com/ZaguanLabs/tmt"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = tmt.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = tmt.TranslateRequest
