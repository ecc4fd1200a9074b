// Package digidist implements the DigiDist stereo distortion effect: a
// threshold-normalized clipping waveshaper optionally followed by a
// two-stage smoothing residual filter.
//
// Two revisions are selectable. Revision1 is the waveshaper alone with a
// single Threshold parameter. Revision2 adds the smoothing stage and a Cutoff
// parameter that is used directly as the smoothing coefficient.
//
// Host-facing calls never fail. Parameter sets below the floor are raised to
// the floor, unknown indices read as 0 and ignore writes, and processing
// tolerates mismatched buffer shapes by working on the common prefix.
//
// Processing does not allocate or lock. Callers must serialize parameter
// changes with Process.
package digidist
