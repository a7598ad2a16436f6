// Package language maps language codes and names to the ISO 639-2 tags that
// the muxer writes into stream metadata.
package language
