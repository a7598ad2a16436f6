// Package muxplan builds the ffmpeg invocation that merges one video with its
// matched dub audio and subtitle tracks.
//
// A Plan is pure data: inputs, stream maps and per-stream metadata. Build
// never touches the filesystem, so the same request always yields the same
// argument list and check-only runs can print exactly what would execute.
package muxplan
