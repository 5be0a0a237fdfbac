package integrations

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"clipforge/internal/config"
	"clipforge/internal/services"
	"clipforge/internal/stage"
)

// Registry holds the registered adapters, keyed by category and provider.
type Registry struct {
	mu       sync.RWMutex
	adapters map[stage.Category]map[string]stage.Adapter
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[stage.Category]map[string]stage.Adapter)}
}

// Register adds an adapter under its own category and provider name.
// Registering the same pair twice is a programming error and is rejected.
func (r *Registry) Register(adapter stage.Adapter) error {
	if adapter == nil {
		return fmt.Errorf("adapter is nil")
	}
	category := adapter.Category()
	if stage.Index(category) < 0 {
		return fmt.Errorf("unknown step category %q", category)
	}
	provider := strings.ToLower(strings.TrimSpace(adapter.Provider()))
	if provider == "" {
		return fmt.Errorf("adapter for %s has no provider name", category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	byProvider, ok := r.adapters[category]
	if !ok {
		byProvider = make(map[string]stage.Adapter)
		r.adapters[category] = byProvider
	}
	if _, exists := byProvider[provider]; exists {
		return fmt.Errorf("adapter %s/%s already registered", category, provider)
	}
	byProvider[provider] = adapter
	return nil
}

// Lookup returns the adapter registered for a category and provider.
func (r *Registry) Lookup(category stage.Category, provider string) (stage.Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[category][strings.ToLower(strings.TrimSpace(provider))]
	return adapter, ok
}

// Providers lists the registered provider names for a category, sorted.
func (r *Registry) Providers(category stage.Category) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters[category]))
	for name := range r.adapters[category] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AdapterSet is the resolved per-run adapter selection. The optional
// video_ai slot may be nil, in which case the step is skipped.
type AdapterSet map[stage.Category]stage.Adapter

// Resolve selects one adapter per category for a run. Per-video overrides
// win over daemon defaults; an empty video_ai selection disables that step.
// A missing adapter for a required category is a configuration error.
func (r *Registry) Resolve(cfg *config.Config, overrides map[string]string) (AdapterSet, error) {
	defaults := map[stage.Category]string{
		stage.Script:   cfg.Providers.Script,
		stage.Voice:    cfg.Providers.Voice,
		stage.Media:    cfg.Providers.Media,
		stage.VideoAI:  cfg.Providers.VideoAI,
		stage.Assembly: cfg.Providers.Assembly,
	}

	set := make(AdapterSet, len(defaults))
	for _, category := range stage.Order() {
		provider := defaults[category]
		if override, ok := overrides[string(category)]; ok {
			provider = override
		}
		provider = strings.ToLower(strings.TrimSpace(provider))

		if provider == "" {
			if stage.Required(category) {
				return nil, services.Wrap(services.ErrConfiguration, string(category), "resolve adapter", "no provider configured for required step", nil)
			}
			continue
		}
		adapter, ok := r.Lookup(category, provider)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, string(category), "resolve adapter", fmt.Sprintf("provider %q is not registered", provider), nil)
		}
		set[category] = adapter
	}
	return set, nil
}
