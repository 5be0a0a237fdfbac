// Package integrations resolves step adapters and vendor credentials.
//
// Adapters register themselves per category and provider name. At run start
// the orchestrator resolves one adapter per category from daemon defaults and
// per-video overrides, and fails fast when a required category has no usable
// adapter. Credentials are opaque to this package; a CredentialResolver hands
// adapters whatever secret material their vendor needs.
package integrations
