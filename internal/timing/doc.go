// Package timing converts voice-synthesis timing data into caption-ready
// sentence segments and renders them as a burn-in-ready ASS subtitle
// document.
//
// Voice providers report timing at different granularities: some return
// per-character or per-word timestamps, others only a total audio duration.
// SentenceSegments aggregates fine-grained units into sentence-level cues;
// Estimate distributes a known total duration across sentences proportional
// to their character counts when no fine-grained timing exists.
package timing
