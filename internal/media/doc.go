// Package media defines the file model shared by matching and mux planning:
// asset classes, episode keys, and matched assets tagged with their group.
package media
