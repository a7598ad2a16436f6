// Package preflight runs the environment checks behind the doctor command:
// the ffmpeg binary, the log directory, and optionally the layout of a
// release folder (videos, group directories, signs directory).
package preflight
