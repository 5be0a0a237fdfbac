// Package stage defines the contract between the pipeline orchestrator and
// the pluggable generation adapters.
//
// Each of the five fixed step categories (script, voice, media, video_ai,
// assembly) has its own typed input and output schema. Adapters receive a
// category-specific Input and return the uniform Result envelope; the
// orchestrator never inspects adapter internals beyond that envelope.
// Result payloads cross the persistence boundary as JSON objects, so the
// typed output structs double as the decode targets for stored step results.
package stage
