// Package main hosts the dubmux CLI entrypoint and command graph.
//
// The root command scans a release folder for videos, pairs each one with the
// dub audio and subtitle files found in the group directories next to it, and
// either prints the plan (--check) or runs ffmpeg to merge everything into a
// copy under the destination directory. Subcommands scaffold and validate the
// configuration file and report whether ffmpeg is installed.
//
// Keep this package lean: matching, planning and muxing live in the internal
// packages; commands here only resolve settings and render results.
package main
