// Package testsupport builds fixtures shared by package tests: temp-dir
// configurations, stub ffmpeg binaries and release folder trees.
package testsupport
