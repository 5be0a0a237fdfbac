// Package pipeline drives the fixed five-step generation sequence.
//
// The Runner executes script, voice, media, video_ai, and assembly in order,
// persisting durable per-step state through the StateManager after every
// transition so an interrupted run resumes at the step following the last
// completed one. Cancellation and deletion are detected by re-reading the
// video between steps; a step that is already executing finishes before the
// run reacts.
package pipeline
