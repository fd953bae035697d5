package recognizer

import (
	"fmt"
	"sync"

	"imgtext/internal/config"
	"imgtext/internal/domain"
	"imgtext/internal/port"
)

// ProviderFactory creates a TextRecognizer from provider settings and the
// caller's credential.
type ProviderFactory func(cfg *config.RecognizerConfig, credential string) (port.TextRecognizer, error)

// registry of recognition provider factories, populated at startup via RegisterProvider.
var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a recognition provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// HasProvider reports whether a factory is registered under name.
func HasProvider(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := providers[name]
	return ok
}

// NewRecognizer creates a TextRecognizer for cfg.Provider using the registered factory.
func NewRecognizer(cfg *config.RecognizerConfig, credential string) (port.TextRecognizer, error) {
	if credential == "" {
		return nil, domain.ErrMissingCredential
	}
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown recognizer provider: %s", cfg.Provider)
	}
	return factory(cfg, credential)
}

// Factory implements port.RecognizerFactory for a fixed provider config.
type Factory struct {
	cfg *config.RecognizerConfig
}

// NewFactory creates a Factory bound to cfg.
func NewFactory(cfg *config.RecognizerConfig) *Factory {
	return &Factory{cfg: cfg}
}

func (f *Factory) NewRecognizer(credential string) (port.TextRecognizer, error) {
	return NewRecognizer(f.cfg, credential)
}
