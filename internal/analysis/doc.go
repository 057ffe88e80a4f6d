// Package analysis orchestrates track analysis across music platforms.
//
// The core abstraction is [Analyzer], which sequences the full pipeline
// for one shared track URL:
//
//  1. Platform detection from the URL host
//  2. Authorization gate on the detected platform's client
//  3. Source track fetch and identity construction
//  4. Behaviour resolution for the source platform
//  5. Either a concurrent fan-out matching the track on every other
//     authorized platform, or a single targeted fetch for copy/share/open
//  6. Persistence of the unified analysis record
//
// Progress is emitted through a non-blocking updates channel so CLI/UI
// layers can render intermediate states; the final [Result] carries the
// terminal state. Per-platform fan-out failures degrade that platform
// to "unavailable" and never abort the rest of the run.
package analysis
