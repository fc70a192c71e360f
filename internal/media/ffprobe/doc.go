// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no marquee-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result expose what the resolution prober needs, chiefly
// the pixel height of the first video stream.
package ffprobe
