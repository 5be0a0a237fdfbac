// Package notifications delivers pipeline events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The orchestrator treats delivery as fire-and-forget: a notifier
// failure never fails a generation run.
//
// Extend this package if you need alternative transports; pipeline code
// depends only on the simple Service interface.
package notifications
