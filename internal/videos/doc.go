// Package videos persists generation runs in SQLite and exposes helpers for
// driving their lifecycle.
//
// The Store manages database connections, schema initialization, owner
// concurrency counts, and the durable per-step state map. Step states are
// stored as one JSON object keyed by step name; that shape is a contract
// shared with external tooling (dashboards, retry endpoints) and must not
// change. Inside the process the JSON is decoded into typed StepState
// structures immediately after read and encoded immediately before write.
//
// Treat this package as the single source of truth for video lifecycle
// semantics; when you add statuses or fields, update schema.sql and bump
// schemaVersion.
package videos
