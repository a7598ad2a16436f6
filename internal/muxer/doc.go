// Package muxer executes mux plans with the ffmpeg command-line tool.
//
// Failures surface as *Error values carrying the exit code and the tail of
// ffmpeg's stderr so callers can log why a single video failed and move on.
package muxer
