package integrations

import (
	"context"
	"strings"
	"sync"

	"clipforge/internal/services"
)

// CredentialResolver returns the decrypted credential an adapter should use
// for a given owner and provider. The credential is opaque: adapters know
// what shape their vendor expects, resolvers only store and return it.
type CredentialResolver interface {
	Resolve(ctx context.Context, ownerID, provider string) (string, error)
}

// StaticCredentials is an in-memory CredentialResolver keyed by provider
// name, shared across owners. Suitable for single-tenant deployments and
// tests; per-owner vaults implement the same interface.
type StaticCredentials struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewStaticCredentials builds a resolver from a provider to secret map.
func NewStaticCredentials(secrets map[string]string) *StaticCredentials {
	copied := make(map[string]string, len(secrets))
	for provider, secret := range secrets {
		copied[strings.ToLower(strings.TrimSpace(provider))] = secret
	}
	return &StaticCredentials{secrets: copied}
}

// Set stores or replaces the credential for a provider.
func (s *StaticCredentials) Set(provider, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.secrets == nil {
		s.secrets = make(map[string]string)
	}
	s.secrets[strings.ToLower(strings.TrimSpace(provider))] = secret
}

// Resolve implements CredentialResolver.
func (s *StaticCredentials) Resolve(_ context.Context, _ string, provider string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	secret, ok := s.secrets[strings.ToLower(strings.TrimSpace(provider))]
	if !ok {
		return "", services.Wrap(services.ErrConfiguration, "", "resolve credential", "no credential for provider "+provider, nil)
	}
	return secret, nil
}
