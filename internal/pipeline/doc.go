// Package pipeline discovers source videos and drives each one through
// matching, command building and muxing on a bounded worker pool.
//
// Per-video problems (no episode key, nothing matched, ffmpeg failure) are
// logged and recorded in the video's Outcome; they never stop the run. A
// destination run lock keeps two merge runs from writing the same directory
// at once.
package pipeline
